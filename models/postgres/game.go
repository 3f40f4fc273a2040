package postgres

import (
	"encoding/json"
	"time"

	game_constants "Guessify/constants/game"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Track is one playable entry of a game's queue.
type Track struct {
	Song   string `json:"song"`
	Artist string `json:"artist"`
	URL    string `json:"url"`
}

// ConnectedUser is one membership entry of a game room, unique per user id.
// ClientID is the socket connection currently backing the membership.
type ConnectedUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ClientID string `json:"clientId"`
	Score    int    `json:"score"`
}

/*
 * 'Game' defines the structure of a Guessify game room. The track queue, the
 * currently playing track and the connected users are kept as JSON columns:
 * they are rewritten wholesale on every read-modify-write cycle, so relational
 * normalization buys nothing here.
 */
type Game struct {
	ID             string         `gorm:"primaryKey;size:50;not null" json:"id"`
	Name           string         `gorm:"uniqueIndex;size:50;not null" json:"name"`
	IsPrivate      bool           `gorm:"default:false" json:"isPrivate"`
	Password       string         `gorm:"size:100" json:"-"`
	PlaylistURL    string         `gorm:"size:255" json:"playlistUrl"`
	Slots          int            `gorm:"default:4" json:"slots"`
	Status         string         `gorm:"size:10;default:WAITING" json:"status"`
	AdminID        string         `gorm:"size:50" json:"adminId"`
	Tracks         datatypes.JSON `json:"-"`
	CurrentTrack   datatypes.JSON `json:"-"`
	ConnectedUsers datatypes.JSON `json:"-"`
	CreatedAt      time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = generateID(12)
	}
	if g.Status == "" {
		g.Status = game_constants.StatusWaiting
	}
	if g.Slots <= 0 {
		g.Slots = game_constants.DefaultSlots
	}
	return nil
}

// TrackQueue decodes the remaining track queue. A corrupt or empty column
// decodes to an empty queue.
func (g *Game) TrackQueue() []Track {
	var tracks []Track
	if len(g.Tracks) > 0 {
		json.Unmarshal(g.Tracks, &tracks)
	}
	return tracks
}

func (g *Game) SetTrackQueue(tracks []Track) {
	data, _ := json.Marshal(tracks)
	g.Tracks = datatypes.JSON(data)
}

// Current returns the track being played, or nil if none is.
func (g *Game) Current() *Track {
	if len(g.CurrentTrack) == 0 || string(g.CurrentTrack) == "null" {
		return nil
	}
	var track Track
	if err := json.Unmarshal(g.CurrentTrack, &track); err != nil {
		return nil
	}
	return &track
}

func (g *Game) SetCurrent(track *Track) {
	data, _ := json.Marshal(track)
	g.CurrentTrack = datatypes.JSON(data)
}

// Members decodes the connected users list.
func (g *Game) Members() []ConnectedUser {
	var members []ConnectedUser
	if len(g.ConnectedUsers) > 0 {
		json.Unmarshal(g.ConnectedUsers, &members)
	}
	return members
}

func (g *Game) SetMembers(members []ConnectedUser) {
	data, _ := json.Marshal(members)
	g.ConnectedUsers = datatypes.JSON(data)
}
