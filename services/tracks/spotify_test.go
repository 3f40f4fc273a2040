package tracks

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playlistPayload = `{
	"items": [
		{"track": {"name": "Song A", "preview_url": "https://cdn.example/a.mp3", "artists": [{"name": "Artist A"}]}},
		{"track": {"name": "No Preview", "preview_url": "", "artists": [{"name": "Artist B"}]}},
		{"track": {"name": "Song C", "preview_url": "https://cdn.example/c.mp3", "artists": [{"name": "Artist C"}, {"name": "Feature"}]}}
	]
}`

func newTestProvider(handler http.HandlerFunc) (*Provider, *httptest.Server) {
	server := httptest.NewServer(handler)
	provider := &Provider{
		BaseURL: server.URL,
		Token:   "test-token",
		Client:  server.Client(),
	}
	return provider, server
}

func TestResolve(t *testing.T) {
	t.Run("keeps only tracks with a preview", func(t *testing.T) {
		provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "/playlists/abc123/tracks", r.URL.Path)
			w.Write([]byte(playlistPayload))
		})
		defer server.Close()

		tracks := provider.Resolve("https://open.spotify.com/playlist/abc123?si=xyz")

		require.Len(t, tracks, 2)
		assert.Equal(t, "Song A", tracks[0].Song)
		assert.Equal(t, "Artist A", tracks[0].Artist)
		assert.Equal(t, "https://cdn.example/a.mp3", tracks[0].URL)
		assert.Equal(t, "Artist C", tracks[1].Artist)
	})

	t.Run("upstream error yields an empty list", func(t *testing.T) {
		provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer server.Close()

		assert.Empty(t, provider.Resolve("abc123"))
	})

	t.Run("malformed body yields an empty list", func(t *testing.T) {
		provider, server := newTestProvider(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})
		defer server.Close()

		assert.Empty(t, provider.Resolve("abc123"))
	})
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"share url", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
		{"share url with query", "https://open.spotify.com/playlist/37i9dQZF1DXcBWIGoYBM5M?si=abc", "37i9dQZF1DXcBWIGoYBM5M"},
		{"bare id", "37i9dQZF1DXcBWIGoYBM5M", "37i9dQZF1DXcBWIGoYBM5M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlaylistID(tt.url))
		})
	}
}
