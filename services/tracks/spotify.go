package tracks

import (
	models "Guessify/models/postgres"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Provider resolves a playlist reference into an ordered list of playable
// tracks via the Spotify catalog. Resolution failures yield an empty list:
// the caller decides whether a game without tracks may exist (it may not).
type Provider struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewProvider() *Provider {
	return &Provider{
		BaseURL: "https://api.spotify.com/v1",
		Token:   os.Getenv("SPOTIFY_TOKEN"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type playlistResponse struct {
	Items []struct {
		Track struct {
			Name       string `json:"name"`
			PreviewURL string `json:"preview_url"`
			Artists    []struct {
				Name string `json:"name"`
			} `json:"artists"`
		} `json:"track"`
	} `json:"items"`
}

// Resolve fetches the playlist's tracks and keeps only those with a playable
// preview URL. Any upstream failure returns an empty list after logging; no
// error propagates to the caller.
func (p *Provider) Resolve(playlistURL string) []models.Track {
	url := fmt.Sprintf("%s/playlists/%s/tracks", p.BaseURL, ExtractPlaylistID(playlistURL))

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Printf("[TRACKS-ERROR] Error building playlist request: %v", err)
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+p.Token)

	resp, err := p.Client.Do(req)
	if err != nil {
		log.Printf("[TRACKS-ERROR] Error fetching playlist %s: %v", playlistURL, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[TRACKS-ERROR] Playlist fetch for %s returned status %d", playlistURL, resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[TRACKS-ERROR] Error reading playlist response: %v", err)
		return nil
	}

	var result playlistResponse
	if err := json.Unmarshal(body, &result); err != nil {
		log.Printf("[TRACKS-ERROR] Error decoding playlist response: %v", err)
		return nil
	}

	tracks := make([]models.Track, 0, len(result.Items))
	for _, item := range result.Items {
		if item.Track.PreviewURL == "" || len(item.Track.Artists) == 0 {
			continue
		}
		tracks = append(tracks, models.Track{
			Song:   item.Track.Name,
			Artist: item.Track.Artists[0].Name,
			URL:    item.Track.PreviewURL,
		})
	}
	return tracks
}

// ExtractPlaylistID pulls the playlist id out of a share URL, dropping any
// query string. A bare id passes through unchanged.
func ExtractPlaylistID(playlistURL string) string {
	parts := strings.Split(playlistURL, "/")
	last := parts[len(parts)-1]
	return strings.Split(last, "?")[0]
}
