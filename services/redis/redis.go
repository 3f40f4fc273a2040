package redis

import (
	redis_models "Guessify/models/redis"
	redis_utils "Guessify/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// presenceTTL bounds how long a stale presence entry can outlive its user.
const presenceTTL = 24 * time.Hour

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SavePresence stores a user's live presence state and the reverse index from
// its socket connection id, so disconnect handling can resolve the user.
// Keys: "presence:user:{userID}" and "presence:conn:{clientID}"
func (rc *RedisClient) SavePresence(presence *redis_models.UserPresence) error {
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}

	pipe := rc.client.Pipeline()
	pipe.Set(rc.ctx, redis_utils.FormatPresenceKey(presence.UserID), data, presenceTTL)
	if presence.ClientID != "" {
		pipe.Set(rc.ctx, redis_utils.FormatConnectionKey(presence.ClientID), presence.UserID, presenceTTL)
	}
	if _, err := pipe.Exec(rc.ctx); err != nil {
		return fmt.Errorf("error saving presence data: %v", err)
	}
	return nil
}

// GetPresence retrieves a user's presence state.
// Returns nil without error when no entry exists.
func (rc *RedisClient) GetPresence(userID string) (*redis_models.UserPresence, error) {
	data, err := rc.client.Get(rc.ctx, redis_utils.FormatPresenceKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.UserPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// SetStatus updates only the status field of a user's presence entry.
func (rc *RedisClient) SetStatus(userID string, status redis_models.UserStatus) error {
	presence, err := rc.GetPresence(userID)
	if err != nil {
		return err
	}
	if presence == nil {
		presence = &redis_models.UserPresence{UserID: userID}
	}
	presence.Status = status
	return rc.SavePresence(presence)
}

// SetClientConnection rebinds a user's presence to a new socket connection id.
// The previous reverse index entry is removed so lookups never resolve a stale
// connection to the user.
func (rc *RedisClient) SetClientConnection(userID, clientID string) error {
	presence, err := rc.GetPresence(userID)
	if err != nil {
		return err
	}
	if presence == nil {
		presence = &redis_models.UserPresence{UserID: userID}
	}
	if presence.ClientID != "" && presence.ClientID != clientID {
		rc.client.Del(rc.ctx, redis_utils.FormatConnectionKey(presence.ClientID))
	}
	presence.ClientID = clientID
	return rc.SavePresence(presence)
}

// FindUserByConnection resolves a socket connection id to its user id.
// Returns "" without error when the connection is unknown.
func (rc *RedisClient) FindUserByConnection(clientID string) (string, error) {
	userID, err := rc.client.Get(rc.ctx, redis_utils.FormatConnectionKey(clientID)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("error resolving connection: %v", err)
	}
	return userID, nil
}

// FindAllPresences lists every stored presence entry, used for lobby user
// listings. Entries that fail to decode are skipped.
func (rc *RedisClient) FindAllPresences() ([]redis_models.UserPresence, error) {
	keys, err := rc.client.Keys(rc.ctx, redis_utils.PresenceKeyPattern).Result()
	if err != nil {
		return nil, fmt.Errorf("error listing presence keys: %v", err)
	}

	presences := make([]redis_models.UserPresence, 0, len(keys))
	for _, key := range keys {
		data, err := rc.client.Get(rc.ctx, key).Bytes()
		if err != nil {
			continue
		}
		var presence redis_models.UserPresence
		if err := json.Unmarshal(data, &presence); err != nil {
			continue
		}
		presences = append(presences, presence)
	}
	return presences, nil
}

// DeleteConnection removes the reverse index entry of a closed connection.
func (rc *RedisClient) DeleteConnection(clientID string) error {
	if err := rc.client.Del(rc.ctx, redis_utils.FormatConnectionKey(clientID)).Err(); err != nil {
		return fmt.Errorf("error deleting connection index: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
