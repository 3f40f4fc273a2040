package sync

import (
	models "Guessify/models/postgres"
	"Guessify/services/redis"
	"fmt"

	"gorm.io/gorm"
)

// SyncManager reconciles the fast-moving presence state in Redis with the
// durable user records in PostgreSQL.
type SyncManager struct {
	redisClient *redis.RedisClient
	db          *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, db *gorm.DB) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		db:          db,
	}
}

// SyncUserScore persists the score accumulated on a user's presence entry
// back to the users table. A user with no presence entry has nothing to sync.
// Nothing increments the presence score yet: round scoring (awarding points
// for correct guesses while a game runs) is the intended producer, and until
// it lands this flush writes back the value seeded at connect.
func (sm *SyncManager) SyncUserScore(userID string) error {
	presence, err := sm.redisClient.GetPresence(userID)
	if err != nil {
		return fmt.Errorf("error getting presence state from Redis: %v", err)
	}
	if presence == nil {
		return nil
	}

	result := sm.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("score", presence.Score)
	if result.Error != nil {
		return fmt.Errorf("error updating user score in PostgreSQL: %v", result.Error)
	}
	return nil
}
