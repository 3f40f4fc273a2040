package handlers

import (
	models "Guessify/models/postgres"
	redis_models "Guessify/models/redis"
	"Guessify/services/games"
	"Guessify/services/redis"
	"Guessify/services/scheduler"
	socketio_types "Guessify/services/socket_io/types"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the act of joining a game room. Validates the game and
// its password, appends the membership entry (read-modify-write, idempotent
// per user id), subscribes the connection to the room and replies with the
// current room view. Reaching the slot count auto-starts the game.
func HandleJoinGame(store *games.Store, redisClient *redis.RedisClient, client *socket.Socket,
	user *models.User, sio *socketio_types.SocketServer, sched *scheduler.Scheduler) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinGame started - User: %s, Socket ID: %s", user.Name, client.Id())

		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing game id for user %s", user.Name)
			client.Emit("join_game_result", gin.H{"status": "KO", "content": "Missing game id"})
			return
		}

		gameID, _ := args[0].(string)
		password := ""
		if len(args) > 1 {
			password, _ = args[1].(string)
		}

		game, err := store.FindByID(gameID)
		if err != nil {
			log.Printf("[JOIN-ERROR] Database error: %v", err)
			client.Emit("join_game_result", gin.H{"status": "KO", "content": "Database error"})
			return
		}
		if game == nil {
			log.Printf("[JOIN-ERROR] Game not found: %s", gameID)
			client.Emit("join_game_result", gin.H{"status": "KO", "content": "Game not found"})
			return
		}

		if !games.CheckPassword(game, password) {
			log.Printf("[JOIN-ERROR] Wrong password for game %s, user %s", gameID, user.Name)
			client.Emit("join_game_result", gin.H{"status": "KO", "content": "Wrong password"})
			return
		}

		member := models.ConnectedUser{
			ID:       user.ID,
			Name:     user.Name,
			ClientID: string(client.Id()),
			Score:    user.Score,
		}
		if games.AddMember(game, member) {
			if err := store.Save(game); err != nil {
				log.Printf("[JOIN-ERROR] Error persisting membership: %v", err)
				client.Emit("join_game_result", gin.H{"status": "KO", "content": "Database error"})
				return
			}
		}

		// Rebind the presence to this connection (stale after a reconnect)
		// and mark the user in-game.
		if err := redisClient.SetClientConnection(user.ID, string(client.Id())); err != nil {
			log.Printf("[JOIN-WARN] Error rebinding connection for %s: %v", user.Name, err)
		}
		if err := redisClient.SetStatus(user.ID, redis_models.StatusGame); err != nil {
			log.Printf("[JOIN-WARN] Error updating presence for %s: %v", user.Name, err)
		}

		client.Join(socket.Room(gameID))
		sio.SetRoom(client.Id(), gameID)

		sio.ToRoom(gameID, "userJoined", gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"clientId": client.Id(),
			"score":    user.Score,
		})
		sio.ToLobby("gameUpdated", game)

		if len(game.Members()) >= game.Slots {
			log.Printf("[JOIN] Game %s reached %d slots, auto-starting", gameID, game.Slots)
			sched.StartGame(gameID)
		}

		trackURL := ""
		if current := game.Current(); current != nil {
			trackURL = current.URL
		}
		log.Printf("[JOIN-SUCCESS] User %s joined game %s", user.Name, gameID)
		client.Emit("join_game_result", gin.H{
			"status": "OK",
			"content": gin.H{
				"users":      game.Members(),
				"gameStatus": game.Status,
				"trackUrl":   trackURL,
			},
		})
	}
}
