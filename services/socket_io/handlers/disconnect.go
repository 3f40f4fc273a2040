package handlers

import (
	models "Guessify/models/postgres"
	redis_models "Guessify/models/redis"
	"Guessify/services/games"
	"Guessify/services/redis"
	"Guessify/services/scheduler"
	socketio_types "Guessify/services/socket_io/types"
	"Guessify/services/sync"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle socket.io client disconnections. The user's presence
// goes OFFLINE, the membership entry is dropped from whatever game the
// connection was in, and an emptied room arms the reaper.
func HandleDisconnecting(store *games.Store, redisClient *redis.RedisClient, client *socket.Socket,
	user *models.User, sio *socketio_types.SocketServer, sched *scheduler.Scheduler,
	syncManager *sync.SyncManager) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] HandleDisconnecting started - User: %s", user.Name)

		// Only flip the presence OFFLINE if this connection still owns it.
		// After a reconnect the old socket's disconnect fires late and must
		// not clobber the new session.
		ownerID, err := redisClient.FindUserByConnection(string(client.Id()))
		if err != nil {
			log.Printf("[DISCONNECT-WARN] Error resolving connection owner: %v", err)
		}
		if ownerID == "" || ownerID == user.ID {
			if err := redisClient.SetStatus(user.ID, redis_models.StatusOffline); err != nil {
				log.Printf("[DISCONNECT-WARN] Error setting presence offline for %s: %v", user.Name, err)
			}
		}
		if err := redisClient.DeleteConnection(string(client.Id())); err != nil {
			log.Printf("[DISCONNECT-WARN] Error dropping connection index: %v", err)
		}
		sio.RemoveConnection(user.ID)

		leaveCurrentGame(store, client, user, sio, sched, "userLeft")

		if err := syncManager.SyncUserScore(user.ID); err != nil {
			log.Printf("[DISCONNECT-WARN] Error syncing score for %s: %v", user.Name, err)
		}

		log.Printf("[DISCONNECT-SUCCESS] User %s disconnected", user.Name)
	}
}

// Exit the current game voluntarily while staying connected. The user goes
// back to the lobby.
func HandleLeaveGame(store *games.Store, redisClient *redis.RedisClient, client *socket.Socket,
	user *models.User, sio *socketio_types.SocketServer, sched *scheduler.Scheduler) func(args ...interface{}) {
	return func(args ...interface{}) {
		if _, ok := sio.RoomOf(client.Id()); !ok {
			client.Emit("leave_game_result", notInAGame)
			return
		}

		leaveCurrentGame(store, client, user, sio, sched, "userLeft")

		if err := redisClient.SetStatus(user.ID, redis_models.StatusLobby); err != nil {
			log.Printf("[LEAVE-WARN] Error setting presence for %s: %v", user.Name, err)
		}
		client.Emit("leave_game_result", gin.H{"status": "OK", "content": nil})
	}
}

// leaveCurrentGame removes the connection's membership entry from the game it
// is in: read-modify-write against the store, admin reassignment, room
// unsubscription, and the empty-room reaper when nobody is left. A connection
// that is in no game is a no-op.
func leaveCurrentGame(store *games.Store, client *socket.Socket, user *models.User,
	sio *socketio_types.SocketServer, sched *scheduler.Scheduler, event string) {
	var game *models.Game
	var err error
	gameID, ok := sio.RoomOf(client.Id())
	if ok {
		sio.ClearRoom(client.Id())
		game, err = store.FindByID(gameID)
	} else {
		// No room table entry (the table is in-memory and does not survive a
		// restart); fall back to scanning memberships by connection id.
		game, err = store.FindByClientID(string(client.Id()))
		if game != nil {
			gameID = game.ID
		}
	}
	if err != nil {
		log.Printf("[LEAVE-ERROR] Error fetching game for %s: %v", client.Id(), err)
		return
	}
	if game == nil {
		// Not in a game, or deleted while the user was leaving.
		return
	}
	client.Leave(socket.Room(gameID))

	if _, removed := games.RemoveMemberByClientID(game, string(client.Id())); removed {
		if err := store.Save(game); err != nil {
			log.Printf("[LEAVE-ERROR] Error persisting membership removal: %v", err)
			return
		}
	}

	sio.ToRoom(gameID, event, client.Id())
	sio.ToLobby("gameUpdated", game)

	if len(game.Members()) == 0 {
		log.Printf("[LEAVE] Game %s is now empty, arming reaper", gameID)
		sched.ReapIfEmpty(gameID)
	}
}
