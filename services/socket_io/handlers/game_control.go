package handlers

import (
	models "Guessify/models/postgres"
	"Guessify/services/scheduler"
	socketio_types "Guessify/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// notInAGame is the structured refusal for room-scoped actions sent by a
// connection that has not joined any game.
var notInAGame = gin.H{"status": "KO", "content": "You must be connected to a game."}

// Start the game the caller is in. Re-entrant: a second start while RUNNING
// changes nothing, the scheduler's registry deduplicates the timer.
func HandleStartGame(client *socket.Socket, user *models.User,
	sio *socketio_types.SocketServer, sched *scheduler.Scheduler) func(args ...interface{}) {
	return func(args ...interface{}) {
		gameID, ok := sio.RoomOf(client.Id())
		if !ok {
			client.Emit("start_game_result", notInAGame)
			return
		}

		log.Printf("[START] User %s starting game %s", user.Name, gameID)
		sched.StartGame(gameID)
		client.Emit("start_game_result", gin.H{"status": "OK", "content": nil})
	}
}

// Stop the game the caller is in: the room hears gameFinished and the game is
// deleted after the drain window.
func HandleStopGame(client *socket.Socket, user *models.User,
	sio *socketio_types.SocketServer, sched *scheduler.Scheduler) func(args ...interface{}) {
	return func(args ...interface{}) {
		gameID, ok := sio.RoomOf(client.Id())
		if !ok {
			client.Emit("stop_game_result", notInAGame)
			return
		}

		log.Printf("[STOP] User %s stopping game %s", user.Name, gameID)
		sched.StopGame(gameID)
		client.Emit("stop_game_result", gin.H{"status": "OK", "content": nil})
	}
}
