package scheduler

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Timer keys, one schedule per game per kind.
const (
	advanceKeyPrefix = "game-"
	endKeyPrefix     = "end-game-"
	emptyKeyPrefix   = "end-game-if-empty-"
)

// GameStore is the slice of the durable store the scheduler needs. A missing
// game is (nil, nil), which timer callbacks treat as already-terminal.
type GameStore interface {
	FindByID(id string) (*models.Game, error)
	Save(game *models.Game) error
	Delete(id string) error
}

// Broadcaster is the narrow emit capability the scheduler holds instead of a
// reference back to the hub, keeping the ownership one-directional.
type Broadcaster interface {
	ToRoom(gameID, event string, payload interface{})
	ToLobby(event string, payload interface{})
}

// Scheduler drives each game's lifecycle with three per-game timers: the
// recurring track advance, the one-shot end-of-game drain, and the one-shot
// empty-room reaper. All timers are registered through a Registry, so
// re-entrant start requests never create duplicate schedules.
type Scheduler struct {
	registry *Registry
	store    GameStore
	hub      Broadcaster

	// Overridable for tests; defaults come from the game constants.
	AdvanceEvery time.Duration
	EndDelay     time.Duration
	EmptyGrace   time.Duration
}

func New(store GameStore, hub Broadcaster) *Scheduler {
	return &Scheduler{
		registry:     NewRegistry(),
		store:        store,
		hub:          hub,
		AdvanceEvery: game_constants.AdvanceInterval,
		EndDelay:     game_constants.EndGameDelay,
		EmptyGrace:   game_constants.EmptyRoomGrace,
	}
}

// Registry exposes the timer table, mainly for tests asserting on armed keys.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// StartGame transitions a game to RUNNING and arms its advance timer. Calling
// it while the game is already running is a no-op. The first track is pushed
// synchronously so the room hears music without waiting a full interval.
func (s *Scheduler) StartGame(gameID string) {
	key := advanceKeyPrefix + gameID
	// Arming the key is the only start gate: concurrent start requests race
	// for ownership inside the registry's lock, and only the winner gets to
	// persist, broadcast and play the first track. Arming also happens before
	// that first tick, so an immediately exhausted queue can cleanly disarm
	// the advance timer it is running under.
	if !s.registry.Interval(key, s.AdvanceEvery, func() {
		s.playTrack(gameID)
	}) {
		return
	}

	game, err := s.store.FindByID(gameID)
	if err != nil {
		log.Printf("[START-ERROR] Error fetching game %s: %v", gameID, err)
		s.registry.Cancel(key)
		return
	}
	if game == nil {
		log.Printf("[START-ERROR] Game %s no longer exists", gameID)
		s.registry.Cancel(key)
		return
	}

	game.Status = game_constants.StatusRunning
	if err := s.store.Save(game); err != nil {
		log.Printf("[START-ERROR] Error persisting RUNNING status for game %s: %v", gameID, err)
		s.registry.Cancel(key)
		return
	}

	s.hub.ToRoom(gameID, "gameStarted", gin.H{})
	log.Printf("[START] Game %s started, advancing every %v", gameID, s.AdvanceEvery)

	s.playTrack(gameID)
}

// StopGame ends a running game early: the room hears gameFinished and the
// end-of-game drain begins. The broadcast only happens when this call is the
// one that disarmed the advance timer; a stop on a game already draining (or
// never started) stays silent so the room hears gameFinished at most once.
func (s *Scheduler) StopGame(gameID string) {
	if s.registry.Cancel(advanceKeyPrefix + gameID) {
		s.hub.ToRoom(gameID, "gameFinished", gin.H{})
	}
	s.FinishGame(gameID)
}

// FinishGame arms the end timer: one drain window for clients to render the
// end-of-game screen, then the game record disappears.
func (s *Scheduler) FinishGame(gameID string) {
	s.registry.Timeout(endKeyPrefix+gameID, s.EndDelay, func() {
		s.removeGame(gameID)
	})
}

// ReapIfEmpty arms the empty-room reaper. When it fires, membership is checked
// again: a rejoin during the grace window keeps the game alive, and the timer
// just disarms.
func (s *Scheduler) ReapIfEmpty(gameID string) {
	s.registry.Timeout(emptyKeyPrefix+gameID, s.EmptyGrace, func() {
		game, err := s.store.FindByID(gameID)
		if err != nil {
			log.Printf("[REAPER-ERROR] Error fetching game %s: %v", gameID, err)
			return
		}
		if game == nil {
			return
		}
		if len(game.Members()) == 0 {
			log.Printf("[REAPER] Game %s still empty after grace window, deleting", gameID)
			s.removeGame(gameID)
		}
	})
}

// playTrack is one advance tick: pop the queue head as the new current track,
// persist, broadcast. An exhausted queue finishes the game instead. A missing
// game means a teardown won the race; the timer disarms silently.
func (s *Scheduler) playTrack(gameID string) {
	game, err := s.store.FindByID(gameID)
	if err != nil {
		log.Printf("[ADVANCE-ERROR] Error fetching game %s: %v", gameID, err)
		return
	}
	if game == nil {
		s.registry.Cancel(advanceKeyPrefix + gameID)
		return
	}

	queue := game.TrackQueue()
	if len(queue) == 0 {
		s.hub.ToRoom(gameID, "gameFinished", gin.H{})
		s.registry.Cancel(advanceKeyPrefix + gameID)
		s.FinishGame(gameID)
		return
	}

	current := queue[0]
	game.SetCurrent(&current)
	game.SetTrackQueue(queue[1:])
	if err := s.store.Save(game); err != nil {
		log.Printf("[ADVANCE-ERROR] Error persisting track advance for game %s: %v", gameID, err)
		return
	}

	s.hub.ToRoom(gameID, "newTrack", gin.H{
		"song":   current.Song,
		"artist": current.Artist,
		"url":    current.URL,
	})
}

// removeGame deletes the game record. The deletion is broadcast to the room
// and the lobby before the store entry disappears. A game already gone is
// treated as terminal, not as an error.
func (s *Scheduler) removeGame(gameID string) {
	game, err := s.store.FindByID(gameID)
	if err != nil {
		log.Printf("[REMOVE-ERROR] Error fetching game %s: %v", gameID, err)
		return
	}
	if game == nil {
		return
	}

	// No advance timer may outlive its game.
	s.registry.Cancel(advanceKeyPrefix + gameID)

	s.hub.ToRoom(gameID, "gameDeleted", gin.H{"id": gameID})
	s.hub.ToLobby("gameDeleted", gin.H{"id": gameID})

	if err := s.store.Delete(gameID); err != nil {
		log.Printf("[REMOVE-ERROR] Error deleting game %s: %v", gameID, err)
	}
}
