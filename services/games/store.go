package games

import (
	models "Guessify/models/postgres"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrNameTaken is returned when a game is created with a name that already
// exists. Unique names are enforced by the database, not by a pre-check.
var ErrNameTaken = errors.New("game name already exists")

// Store is the durable game repository. It is the single source of truth for
// game state between requests: every mutation path fetches, applies its delta
// and saves back through this type.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new game. A duplicate name maps to ErrNameTaken.
func (s *Store) Create(game *models.Game) error {
	if err := s.db.Create(game).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameTaken
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrNameTaken
		}
		return fmt.Errorf("error creating game: %v", err)
	}
	return nil
}

// FindByID fetches one game. A missing game returns (nil, nil): callers treat
// absence as already-terminal, never as a failure.
func (s *Store) FindByID(id string) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error fetching game %s: %v", id, err)
	}
	return &game, nil
}

func (s *Store) FindAll() ([]models.Game, error) {
	var games []models.Game
	if err := s.db.Order("created_at").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("error listing games: %v", err)
	}
	return games, nil
}

// FindByClientID scans all games for the one holding a membership entry backed
// by the given socket connection.
func (s *Store) FindByClientID(clientID string) (*models.Game, error) {
	all, err := s.FindAll()
	if err != nil {
		return nil, err
	}
	for i := range all {
		for _, member := range all[i].Members() {
			if member.ClientID == clientID {
				return &all[i], nil
			}
		}
	}
	return nil, nil
}

// Save writes back a mutated game record.
func (s *Store) Save(game *models.Game) error {
	if err := s.db.Save(game).Error; err != nil {
		return fmt.Errorf("error saving game %s: %v", game.ID, err)
	}
	return nil
}

func (s *Store) Delete(id string) error {
	if err := s.db.Delete(&models.Game{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("error deleting game %s: %v", id, err)
	}
	return nil
}
