package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryInterval(t *testing.T) {
	t.Run("arming twice keeps exactly one live timer", func(t *testing.T) {
		r := NewRegistry()
		var fires int32

		assert.True(t, r.Interval("game-1", 10*time.Millisecond, func() {
			atomic.AddInt32(&fires, 1)
		}))
		assert.False(t, r.Interval("game-1", time.Millisecond, func() {
			atomic.AddInt32(&fires, 100)
		}))
		assert.True(t, r.Exists("game-1"))

		time.Sleep(55 * time.Millisecond)
		r.Cancel("game-1")

		// Only the first schedule ever ran.
		assert.Less(t, atomic.LoadInt32(&fires), int32(100))
		assert.Greater(t, atomic.LoadInt32(&fires), int32(0))
	})

	t.Run("cancel stops future fires", func(t *testing.T) {
		r := NewRegistry()
		var fires int32
		r.Interval("game-2", 10*time.Millisecond, func() {
			atomic.AddInt32(&fires, 1)
		})

		assert.True(t, r.Cancel("game-2"))
		assert.False(t, r.Exists("game-2"))

		seen := atomic.LoadInt32(&fires)
		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, seen, atomic.LoadInt32(&fires))
	})

	t.Run("cancel of an unknown key reports false", func(t *testing.T) {
		r := NewRegistry()
		assert.False(t, r.Cancel("nope"))
	})
}

func TestRegistryTimeout(t *testing.T) {
	t.Run("fires once and disarms itself", func(t *testing.T) {
		r := NewRegistry()
		var fires int32
		assert.True(t, r.Timeout("end-game-1", 10*time.Millisecond, func() {
			atomic.AddInt32(&fires, 1)
		}))

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&fires) == 1
		}, time.Second, 5*time.Millisecond)
		assert.False(t, r.Exists("end-game-1"))

		time.Sleep(30 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
	})

	t.Run("arming twice is a no-op", func(t *testing.T) {
		r := NewRegistry()
		var fires int32
		r.Timeout("end-game-2", 10*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
		assert.False(t, r.Timeout("end-game-2", 10*time.Millisecond, func() { atomic.AddInt32(&fires, 1) }))

		time.Sleep(50 * time.Millisecond)
		assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
	})

	t.Run("cancel before expiry suppresses the fire", func(t *testing.T) {
		r := NewRegistry()
		var fires int32
		r.Timeout("end-game-3", 20*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
		assert.True(t, r.Cancel("end-game-3"))

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&fires))
	})

	t.Run("key can be re-armed after firing", func(t *testing.T) {
		r := NewRegistry()
		var fires int32
		r.Timeout("k", 5*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&fires) == 1
		}, time.Second, time.Millisecond)

		assert.True(t, r.Timeout("k", 5*time.Millisecond, func() { atomic.AddInt32(&fires, 1) }))
		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&fires) == 2
		}, time.Second, time.Millisecond)
	})
}
