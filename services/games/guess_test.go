package games

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	track := models.Track{Song: "Song A", Artist: "Artist B", URL: "https://cdn.example/preview.mp3"}

	tests := []struct {
		name  string
		guess string
		want  Answer
	}{
		{"matches the song", "Song A", AnswerSong},
		{"matches the artist", "Artist B", AnswerArtist},
		{"matches nothing", "x", AnswerNone},
		{"empty guess matches nothing", "", AnswerNone},
		{"case sensitive", "song a", AnswerNone},
		{"partial match is no match", "Song", AnswerNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(track, tt.guess))
		})
	}

	t.Run("song equal to artist reports both", func(t *testing.T) {
		same := models.Track{Song: "Echo", Artist: "Echo"}
		assert.Equal(t, AnswerBoth, Evaluate(same, "Echo"))
	})
}

func TestCanScore(t *testing.T) {
	track := models.Track{Song: "Song A", Artist: "Artist B", URL: "https://cdn.example/preview.mp3"}

	t.Run("running game with a playing track scores", func(t *testing.T) {
		game := &models.Game{ID: "g1", Status: game_constants.StatusRunning}
		game.SetCurrent(&track)
		assert.True(t, CanScore(game))
	})

	t.Run("waiting game never scores", func(t *testing.T) {
		game := &models.Game{ID: "g2", Status: game_constants.StatusWaiting}
		game.SetCurrent(&track)
		assert.False(t, CanScore(game))
	})

	t.Run("running game with nothing playing never scores", func(t *testing.T) {
		game := &models.Game{ID: "g3", Status: game_constants.StatusRunning}
		assert.False(t, CanScore(game))
	})
}
