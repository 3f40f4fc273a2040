package game

import "time"

// Game lifecycle statuses persisted on the game record. There is no terminal
// status value: a finished game is deleted, not marked.
const (
	StatusWaiting = "WAITING"
	StatusRunning = "RUNNING"
)

// ---------------------------------------------------------------
// TIMEOUTS
// ---------------------------------------------------------------
const (
	// AdvanceInterval is how long a track plays before the next one is pushed.
	AdvanceInterval = 15 * time.Second
	// EndGameDelay is the drain window between gameFinished and deletion, so
	// clients can render the end-of-game screen before the room disappears.
	EndGameDelay = 1 * time.Second
	// EmptyRoomGrace is how long an empty room survives before the reaper
	// deletes it. A rejoin inside this window keeps the game alive.
	EmptyRoomGrace = 5 * time.Second
)

// DefaultSlots is the target capacity used when a game is created without an
// explicit slot count. Reaching it auto-starts the game.
const DefaultSlots = 4
