package scheduler

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	games map[string]*models.Game
}

func newFakeStore(games ...*models.Game) *fakeStore {
	s := &fakeStore{games: make(map[string]*models.Game)}
	for _, g := range games {
		s.games[g.ID] = g
	}
	return s
}

func (s *fakeStore) FindByID(id string) (*models.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, nil
	}
	copied := *g
	return &copied, nil
}

func (s *fakeStore) Save(game *models.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *game
	s.games[game.ID] = &copied
	return nil
}

func (s *fakeStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
	return nil
}

func (s *fakeStore) exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.games[id]
	return ok
}

type emitted struct {
	scope string // "room" or "lobby"
	room  string
	event string
}

type fakeHub struct {
	mu     sync.Mutex
	events []emitted
}

func (h *fakeHub) ToRoom(gameID, event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, emitted{scope: "room", room: gameID, event: event})
}

func (h *fakeHub) ToLobby(event string, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, emitted{scope: "lobby", event: event})
}

func (h *fakeHub) count(scope, event string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, e := range h.events {
		if e.scope == scope && e.event == event {
			n++
		}
	}
	return n
}

func newTestScheduler(store GameStore) (*Scheduler, *fakeHub) {
	hub := &fakeHub{}
	s := New(store, hub)
	s.AdvanceEvery = 20 * time.Millisecond
	s.EndDelay = 10 * time.Millisecond
	s.EmptyGrace = 30 * time.Millisecond
	return s, hub
}

func gameWithTracks(id string, n int) *models.Game {
	game := &models.Game{ID: id, Name: "game-" + id, Status: game_constants.StatusWaiting, Slots: 4}
	tracks := make([]models.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, models.Track{Song: "Song", Artist: "Artist", URL: "url"})
	}
	game.SetTrackQueue(tracks)
	return game
}

func TestStartGameDrainsQueueAndDeletes(t *testing.T) {
	store := newFakeStore(gameWithTracks("g1", 2))
	sched, hub := newTestScheduler(store)

	sched.StartGame("g1")

	// First track arrives synchronously with the start.
	assert.Equal(t, 1, hub.count("room", "gameStarted"))
	assert.Equal(t, 1, hub.count("room", "newTrack"))

	game, err := store.FindByID("g1")
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Equal(t, game_constants.StatusRunning, game.Status)
	assert.Len(t, game.TrackQueue(), 1)
	require.NotNil(t, game.Current())

	// The queue drains, the room hears gameFinished, and after the drain
	// window the record disappears.
	assert.Eventually(t, func() bool {
		return !store.exists("g1")
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, 2, hub.count("room", "newTrack"))
	assert.Equal(t, 1, hub.count("room", "gameFinished"))
	assert.Equal(t, 1, hub.count("room", "gameDeleted"))
	assert.Equal(t, 1, hub.count("lobby", "gameDeleted"))
	assert.False(t, sched.Registry().Exists("game-g1"))
	assert.False(t, sched.Registry().Exists("end-game-g1"))
}

func TestStartGameIsReentrant(t *testing.T) {
	store := newFakeStore(gameWithTracks("g2", 5))
	sched, hub := newTestScheduler(store)

	sched.StartGame("g2")
	sched.StartGame("g2")
	sched.StartGame("g2")

	assert.Equal(t, 1, hub.count("room", "gameStarted"))
	assert.Equal(t, 1, hub.count("room", "newTrack"))
	assert.True(t, sched.Registry().Exists("game-g2"))

	sched.Registry().Cancel("game-g2")
}

func TestStartGameConcurrentlyPlaysOneFirstTrack(t *testing.T) {
	store := newFakeStore(gameWithTracks("race", 5))
	sched, hub := newTestScheduler(store)
	// Keep the interval out of the picture: only the synchronous first
	// ticks of the racing starts may emit anything here.
	sched.AdvanceEvery = time.Hour

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sched.StartGame("race")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, hub.count("room", "gameStarted"))
	assert.Equal(t, 1, hub.count("room", "newTrack"))

	game, err := store.FindByID("race")
	require.NoError(t, err)
	require.NotNil(t, game)
	assert.Len(t, game.TrackQueue(), 4)

	sched.Registry().Cancel("game-race")
}

func TestStartGameOnMissingGame(t *testing.T) {
	store := newFakeStore()
	sched, hub := newTestScheduler(store)

	sched.StartGame("ghost")

	assert.False(t, sched.Registry().Exists("game-ghost"))
	assert.Equal(t, 0, hub.count("room", "gameStarted"))
}

func TestStopGame(t *testing.T) {
	store := newFakeStore(gameWithTracks("g3", 10))
	sched, hub := newTestScheduler(store)

	sched.StartGame("g3")
	sched.StopGame("g3")

	assert.False(t, sched.Registry().Exists("game-g3"))
	assert.GreaterOrEqual(t, hub.count("room", "gameFinished"), 1)

	assert.Eventually(t, func() bool {
		return !store.exists("g3")
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.count("room", "gameDeleted"))
}

func TestStopGameBroadcastsFinishedOnce(t *testing.T) {
	store := newFakeStore(gameWithTracks("g6", 10))
	sched, hub := newTestScheduler(store)
	sched.AdvanceEvery = time.Hour

	sched.StartGame("g6")
	sched.StopGame("g6")
	sched.StopGame("g6")

	assert.Equal(t, 1, hub.count("room", "gameFinished"))

	assert.Eventually(t, func() bool {
		return !store.exists("g6")
	}, 2*time.Second, 5*time.Millisecond)
}

func TestStopGameOnNeverStartedGameStaysSilent(t *testing.T) {
	store := newFakeStore(gameWithTracks("g7", 3))
	sched, hub := newTestScheduler(store)

	sched.StopGame("g7")

	assert.Equal(t, 0, hub.count("room", "gameFinished"))

	// The drain still removes the record.
	assert.Eventually(t, func() bool {
		return !store.exists("g7")
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.count("room", "gameDeleted"))
}

func TestReaperDeletesStillEmptyGame(t *testing.T) {
	store := newFakeStore(gameWithTracks("g4", 3))
	sched, hub := newTestScheduler(store)

	sched.ReapIfEmpty("g4")
	assert.True(t, sched.Registry().Exists("end-game-if-empty-g4"))

	assert.Eventually(t, func() bool {
		return !store.exists("g4")
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, hub.count("room", "gameDeleted"))
	assert.False(t, sched.Registry().Exists("end-game-if-empty-g4"))
}

func TestReaperSparesRejoinedGame(t *testing.T) {
	game := gameWithTracks("g5", 3)
	store := newFakeStore(game)
	sched, hub := newTestScheduler(store)

	sched.ReapIfEmpty("g5")

	// A member comes back inside the grace window.
	game.SetMembers([]models.ConnectedUser{{ID: "u1", Name: "back", ClientID: "c1"}})
	require.NoError(t, store.Save(game))

	time.Sleep(3 * sched.EmptyGrace)

	assert.True(t, store.exists("g5"))
	assert.Equal(t, 0, hub.count("room", "gameDeleted"))
	assert.False(t, sched.Registry().Exists("end-game-if-empty-g5"))
}

func TestReaperOnAlreadyDeletedGame(t *testing.T) {
	store := newFakeStore()
	sched, hub := newTestScheduler(store)

	sched.ReapIfEmpty("gone")

	time.Sleep(3 * sched.EmptyGrace)
	assert.Equal(t, 0, hub.count("room", "gameDeleted"))
	assert.False(t, sched.Registry().Exists("end-game-if-empty-gone"))
}
