package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/workout-planner/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	workoutCachePrefix   = "workouts:"
	workoutVersionPrefix = "workouts:ver:"
	defaultCacheTTL      = 5 * time.Minute
	versionTTL           = 24 * time.Hour
)

// setIfVersion writes the list only while the user's version is still the
// one the caller read before loading it from the store.
// KEYS[1] list key, KEYS[2] version key; ARGV[1] version, ARGV[2] data, ARGV[3] ttl in ms
var setIfVersion = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if not current then
	current = "0"
end
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// WorkoutCache caches each user's workout list in Redis
type WorkoutCache struct {
	client *Client
	ttl    time.Duration
}

var _ domain.WorkoutCache = (*WorkoutCache)(nil)

// NewWorkoutCache creates a new workout cache
func NewWorkoutCache(client *Client, ttl time.Duration) *WorkoutCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &WorkoutCache{client: client, ttl: ttl}
}

func cacheKey(userID uuid.UUID) string {
	return workoutCachePrefix + userID.String()
}

func versionKey(userID uuid.UUID) string {
	return workoutVersionPrefix + userID.String()
}

// Get returns the cached list for a user. A miss returns (nil, nil).
func (c *WorkoutCache) Get(ctx context.Context, userID uuid.UUID) ([]domain.Workout, error) {
	data, err := c.client.rdb.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workout cache: %w", err)
	}

	workouts := []domain.Workout{}
	if err := json.Unmarshal(data, &workouts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workouts: %w", err)
	}

	return workouts, nil
}

// Version returns the user's write counter; 0 if the user was never invalidated
func (c *WorkoutCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	version, err := c.client.rdb.Get(ctx, versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read workout cache version: %w", err)
	}
	return version, nil
}

// Set caches the list for a user if no write happened since version was read.
// A stale list is dropped silently.
func (c *WorkoutCache) Set(ctx context.Context, userID uuid.UUID, version int64, workouts []domain.Workout) error {
	data, err := json.Marshal(workouts)
	if err != nil {
		return fmt.Errorf("failed to marshal workouts: %w", err)
	}

	keys := []string{cacheKey(userID), versionKey(userID)}
	if err := setIfVersion.Run(ctx, c.client.rdb, keys, version, data, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("failed to write workout cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached list for a user and bumps the user's version
// so in-flight reads cannot repopulate it
func (c *WorkoutCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	_, err := c.client.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey(userID))
		pipe.Expire(ctx, versionKey(userID), versionTTL)
		pipe.Del(ctx, cacheKey(userID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to invalidate workout cache: %w", err)
	}
	return nil
}
