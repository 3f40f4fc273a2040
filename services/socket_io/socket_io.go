package socket_io

import (
	redis_models "Guessify/models/redis"
	"Guessify/services/games"
	"Guessify/services/redis"
	"Guessify/services/scheduler"
	"Guessify/services/socket_io/handlers"
	socketio_types "Guessify/services/socket_io/types"
	socketio_utils "Guessify/services/socket_io/utils"
	"Guessify/services/sync"
	"Guessify/services/tracks"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.UserConnections = make(map[string]*socket.Socket)
	sio.ConnectionRooms = make(map[socket.SocketId]string)

	store := games.NewStore(db)
	provider := tracks.NewProvider()
	syncManager := sync.NewSyncManager(redisClient, db)
	sched := scheduler.New(store, (*socketio_types.SocketServer)(sio))

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client is authenticated; unauthenticated connections
		// are closed immediately, nothing mutated.
		success, user := socketio_utils.VerifyUserConnection(client, db)
		if !success {
			client.Disconnect(true)
			return
		}

		(*socketio_types.SocketServer)(sio).AddConnection(user.ID, client)

		if err := redisClient.SavePresence(&redis_models.UserPresence{
			UserID:   user.ID,
			Name:     user.Name,
			Status:   redis_models.StatusLobby,
			ClientID: string(client.Id()),
			Score:    user.Score,
		}); err != nil {
			log.Printf("[CONNECT-WARN] Error saving presence for %s: %v", user.Name, err)
		}

		log.Printf("[CONNECT] User %s connected with socket %s", user.Name, client.Id())

		// Join a game room (validates password, subscribes to the room)
		client.On("join_game", handlers.HandleJoinGame(store, redisClient, client, user,
			(*socketio_types.SocketServer)(sio), sched))

		// Exit a game voluntarily
		client.On("leave_game", handlers.HandleLeaveGame(store, redisClient, client, user,
			(*socketio_types.SocketServer)(sio), sched))

		// Start / stop the game of the caller's current room
		client.On("start_game", handlers.HandleStartGame(client, user,
			(*socketio_types.SocketServer)(sio), sched))
		client.On("stop_game", handlers.HandleStopGame(client, user,
			(*socketio_types.SocketServer)(sio), sched))

		// Guess the current track
		client.On("guess", handlers.HandleGuess(store, client, user,
			(*socketio_types.SocketServer)(sio)))

		// Chat inside the game room
		client.On("message", handlers.HandleMessage(client, user,
			(*socketio_types.SocketServer)(sio)))

		// Lobby actions
		client.On("create_game", handlers.HandleCreateGame(store, provider, client, user,
			(*socketio_types.SocketServer)(sio)))
		client.On("list_games", handlers.HandleListGames(store, client))
		client.On("list_users", handlers.HandleListUsers(redisClient, client))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(store, redisClient, client, user,
			(*socketio_types.SocketServer)(sio), sched, syncManager))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	log.Println("Socket server started")
}
