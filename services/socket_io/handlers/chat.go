package handlers

import (
	models "Guessify/models/postgres"
	socketio_types "Guessify/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to relay a chat message to all clients in the caller's game room.
func HandleMessage(client *socket.Socket, user *models.User,
	sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		gameID, ok := sio.RoomOf(client.Id())
		if !ok {
			client.Emit("message_result", notInAGame)
			return
		}

		if len(args) < 1 {
			client.Emit("message_result", gin.H{"status": "KO", "content": "Missing message text"})
			return
		}
		message, _ := args[0].(string)

		log.Printf("[CHAT] User %s -> game %s: %s", user.Name, gameID, message)
		sio.ToRoom(gameID, "message", gin.H{
			"clientId": client.Id(),
			"message":  message,
		})
		client.Emit("message_result", gin.H{"status": "OK", "content": nil})
	}
}
