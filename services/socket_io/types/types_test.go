package socketio_types

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestRoomTable(t *testing.T) {
	t.Run("set and resolve", func(t *testing.T) {
		s := NewSocketServer()
		s.SetRoom(socket.SocketId("c1"), "g1")

		gameID, ok := s.RoomOf(socket.SocketId("c1"))
		assert.True(t, ok)
		assert.Equal(t, "g1", gameID)
	})

	t.Run("unknown connection is in no room", func(t *testing.T) {
		s := NewSocketServer()
		_, ok := s.RoomOf(socket.SocketId("ghost"))
		assert.False(t, ok)
	})

	t.Run("clear removes the mapping", func(t *testing.T) {
		s := NewSocketServer()
		s.SetRoom(socket.SocketId("c1"), "g1")
		s.ClearRoom(socket.SocketId("c1"))

		_, ok := s.RoomOf(socket.SocketId("c1"))
		assert.False(t, ok)
	})
}

// The room table is mutated from every handler goroutine; hammer it.
func TestRoomTableConcurrency(t *testing.T) {
	s := NewSocketServer()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			connID := socket.SocketId(fmt.Sprintf("c%d", i))
			s.SetRoom(connID, fmt.Sprintf("g%d", i%5))
			s.RoomOf(connID)
			if i%2 == 0 {
				s.ClearRoom(connID)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		connID := socket.SocketId(fmt.Sprintf("c%d", i))
		_, ok := s.RoomOf(connID)
		assert.Equal(t, i%2 != 0, ok)
	}
}

func TestConnectionTable(t *testing.T) {
	s := NewSocketServer()

	s.AddConnection("u1", nil)
	_, exists := s.GetConnection("u1")
	assert.True(t, exists)

	s.RemoveConnection("u1")
	_, exists = s.GetConnection("u1")
	assert.False(t, exists)
}
