package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and the two
// tables the hub maintains: user -> socket, and connection -> game room. The
// room table is the authoritative answer to "which game is this action for";
// no room-name pattern matching happens anywhere.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track userID -> socket connections
	UserConnections map[string]*socket.Socket
	// Map to track connection id -> joined game id
	ConnectionRooms map[socket.SocketId]string
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		ConnectionRooms: make(map[socket.SocketId]string),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(userID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[userID] = client
}

func (s *SocketServer) RemoveConnection(userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, userID)
}

func (s *SocketServer) GetConnection(userID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.UserConnections[userID]
	return client, exists
}

// SetRoom records which game a connection has joined.
func (s *SocketServer) SetRoom(connID socket.SocketId, gameID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ConnectionRooms[connID] = gameID
}

// RoomOf resolves the game a connection is in, if any.
func (s *SocketServer) RoomOf(connID socket.SocketId) (string, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	gameID, exists := s.ConnectionRooms[connID]
	return gameID, exists
}

func (s *SocketServer) ClearRoom(connID socket.SocketId) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.ConnectionRooms, connID)
}

// ToRoom emits an event to every member of a game's room.
func (s *SocketServer) ToRoom(gameID, event string, payload interface{}) {
	s.Sio_server.To(socket.Room(gameID)).Emit(event, payload)
}

// ToLobby mirrors an event to every connected client on the root namespace.
func (s *SocketServer) ToLobby(event string, payload interface{}) {
	s.Sio_server.Of("/", nil).Emit(event, payload)
}
