package handlers

import (
	models "Guessify/models/postgres"
	"Guessify/services/games"
	socketio_types "Guessify/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle a submitted guess. The guess is scored against the
// currently playing track and the verdict broadcast to the room. While the
// game is not running (or nothing plays yet) the guess is accepted but never
// scored: no guess event carries an answer.
func HandleGuess(store *games.Store, client *socket.Socket, user *models.User,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		gameID, ok := sio.RoomOf(client.Id())
		if !ok {
			client.Emit("guess_result", notInAGame)
			return
		}

		if len(args) < 1 {
			client.Emit("guess_result", gin.H{"status": "KO", "content": "Missing guess text"})
			return
		}
		guess, _ := args[0].(string)

		game, err := store.FindByID(gameID)
		if err != nil {
			log.Printf("[GUESS-ERROR] Database error: %v", err)
			client.Emit("guess_result", gin.H{"status": "KO", "content": "Database error"})
			return
		}
		if game == nil {
			client.Emit("guess_result", gin.H{"status": "KO", "content": "Game not found"})
			return
		}

		if !games.CanScore(game) {
			client.Emit("guess_result", gin.H{"status": "OK", "content": nil})
			return
		}

		answer := games.Evaluate(*game.Current(), guess)
		log.Printf("[GUESS] User %s in game %s guessed %q -> %s", user.Name, gameID, guess, answer)

		sio.ToRoom(gameID, "guess", gin.H{
			"clientId": client.Id(),
			"guess":    guess,
			"answer":   answer,
		})
		client.Emit("guess_result", gin.H{"status": "OK", "content": nil})
	}
}
