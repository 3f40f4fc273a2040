package games

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
)

// Answer classifies a guess against the currently playing track.
type Answer string

const (
	AnswerNone   Answer = "none"
	AnswerSong   Answer = "song"
	AnswerArtist Answer = "artist"
	AnswerBoth   Answer = "both"
)

// CanScore reports whether guesses against the game are scored right now.
// Only a RUNNING game with a track currently playing scores; anywhere else a
// guess is accepted but carries no answer.
func CanScore(game *models.Game) bool {
	return game.Status == game_constants.StatusRunning && game.Current() != nil
}

// Evaluate scores a guess against a track. Matching is exact and
// case-sensitive: "song a" does not match "Song A".
func Evaluate(track models.Track, guess string) Answer {
	matchedSong := guess == track.Song
	matchedArtist := guess == track.Artist

	switch {
	case matchedSong && matchedArtist:
		return AnswerBoth
	case matchedSong:
		return AnswerSong
	case matchedArtist:
		return AnswerArtist
	default:
		return AnswerNone
	}
}
