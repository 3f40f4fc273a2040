package handlers

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
	redis_models "Guessify/models/redis"
	"Guessify/services/games"
	"Guessify/services/redis"
	socketio_types "Guessify/services/socket_io/types"
	"Guessify/services/tracks"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to create a new game from the lobby. The playlist is resolved
// first: a game with zero playable tracks must never exist, so an empty
// resolution aborts before anything is persisted.
func HandleCreateGame(store *games.Store, provider *tracks.Provider, client *socket.Socket,
	user *models.User, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[CREATE] HandleCreateGame started - User: %s", user.Name)

		if len(args) < 1 {
			client.Emit("create_game_result", gin.H{"status": "KO", "content": "Missing game settings"})
			return
		}
		settings, ok := args[0].(map[string]interface{})
		if !ok {
			client.Emit("create_game_result", gin.H{"status": "KO", "content": "Invalid game settings"})
			return
		}

		name, _ := settings["name"].(string)
		playlistURL, _ := settings["playlistUrl"].(string)
		password, _ := settings["password"].(string)
		slots := game_constants.DefaultSlots
		if raw, ok := settings["slots"].(float64); ok && int(raw) > 0 {
			slots = int(raw)
		}

		if name == "" || playlistURL == "" {
			client.Emit("create_game_result", gin.H{"status": "KO", "content": "Name and playlist are required"})
			return
		}

		trackList := provider.Resolve(playlistURL)
		if len(trackList) == 0 {
			log.Printf("[CREATE-ERROR] No playable tracks for playlist %s", playlistURL)
			client.Emit("create_game_result", gin.H{"status": "KO", "content": "Couldn't load tracks"})
			return
		}

		game := &models.Game{
			Name:        name,
			IsPrivate:   password != "",
			Password:    password,
			PlaylistURL: playlistURL,
			Slots:       slots,
			Status:      game_constants.StatusWaiting,
			AdminID:     user.ID,
		}
		game.SetTrackQueue(trackList)

		if err := store.Create(game); err != nil {
			if errors.Is(err, games.ErrNameTaken) {
				client.Emit("create_game_result", gin.H{"status": "KO", "content": "This game name already exists."})
				return
			}
			log.Printf("[CREATE-ERROR] Error persisting game: %v", err)
			client.Emit("create_game_result", gin.H{"status": "KO", "content": "Database error"})
			return
		}

		log.Printf("[CREATE-SUCCESS] Game %s (%s) created by %s with %d tracks",
			game.ID, game.Name, user.Name, len(trackList))
		sio.ToLobby("newGame", game)
		client.Emit("create_game_result", gin.H{"status": "OK", "content": game})
	}
}

// List every existing game, for the lobby screen.
func HandleListGames(store *games.Store, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		all, err := store.FindAll()
		if err != nil {
			log.Printf("[LOBBY-ERROR] Error listing games: %v", err)
			client.Emit("games_list", gin.H{"status": "KO", "content": "Database error"})
			return
		}
		client.Emit("games_list", gin.H{"status": "OK", "content": all})
	}
}

// List users currently in the lobby.
func HandleListUsers(redisClient *redis.RedisClient, client *socket.Socket) func(args ...interface{}) {
	return func(args ...interface{}) {
		presences, err := redisClient.FindAllPresences()
		if err != nil {
			log.Printf("[LOBBY-ERROR] Error listing presences: %v", err)
			client.Emit("users_list", gin.H{"status": "KO", "content": "Presence store error"})
			return
		}

		lobbyUsers := presences[:0]
		for _, presence := range presences {
			if presence.Status == redis_models.StatusLobby {
				lobbyUsers = append(lobbyUsers, presence)
			}
		}
		client.Emit("users_list", gin.H{"status": "OK", "content": lobbyUsers})
	}
}
