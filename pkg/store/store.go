// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultTTL is the default TTL for player state in Redis (30 days)
	DefaultTTL = 30 * 24 * time.Hour
	// KeyPrefix is the prefix for all player state keys
	KeyPrefix = "button_story:player_state:"
)

// StateStore persists progression snapshots per player.
type StateStore interface {
	// Load returns the stored state, or nil when the player has none.
	Load(ctx context.Context, userID string) (*progression.State, error)
	// Save writes the full snapshot.
	Save(ctx context.Context, userID string, state *progression.State) error
	// Delete removes the stored snapshot.
	Delete(ctx context.Context, userID string) error
}

// RedisStateStoreConfig tunes the Redis state store.
type RedisStateStoreConfig struct {
	TTL          time.Duration
	SaveAttempts int
	RetryDelay   time.Duration
}

// RedisStateStore implements StateStore using Redis.
type RedisStateStore struct {
	client redis.UniversalClient
	cfg    RedisStateStoreConfig
}

// NewRedisStateStore creates a new Redis-backed state store.
func NewRedisStateStore(client redis.UniversalClient, cfg RedisStateStoreConfig) *RedisStateStore {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SaveAttempts < 1 {
		cfg.SaveAttempts = 1
	}
	return &RedisStateStore{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates a Redis key for a player
func makeKey(userID string) string {
	return fmt.Sprintf("%s%s", KeyPrefix, userID)
}

// Load retrieves the state for a player from Redis. Missing and malformed
// snapshots both yield a nil state; the latter is logged as a warning.
func (r *RedisStateStore) Load(ctx context.Context, userID string) (*progression.State, error) {
	key := makeKey(userID)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		logrus.Infof("no existing state for user %s", userID)
		return nil, nil
	}
	if err != nil {
		logrus.Errorf("failed to get state for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	state, err := progression.Decode(data)
	if err != nil {
		logrus.Warnf("discarding stored state for user %s: %v", userID, err)
		return nil, nil
	}

	logrus.Debugf("retrieved state for user %s at count %d", userID, state.ClickCount)
	return state, nil
}

// Save writes the encoded snapshot with the configured TTL, retrying
// transient Redis failures.
func (r *RedisStateStore) Save(ctx context.Context, userID string, state *progression.State) error {
	if state == nil {
		return errors.New("nil state")
	}

	data, err := progression.Encode(state)
	if err != nil {
		logrus.Errorf("failed to encode state for user %s: %v", userID, err)
		return fmt.Errorf("failed to encode state: %w", err)
	}

	key := makeKey(userID)
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.cfg.RetryDelay), uint64(r.cfg.SaveAttempts-1)),
		ctx,
	)
	err = backoff.Retry(func() error {
		return r.client.Set(ctx, key, data, r.cfg.TTL).Err()
	}, policy)
	if err != nil {
		logrus.Errorf("failed to set state for user %s: %v", userID, err)
		return fmt.Errorf("failed to set state: %w", err)
	}

	logrus.Debugf("saved state for user %s with TTL %v", userID, r.cfg.TTL)
	return nil
}

// Delete deletes the state for a player from Redis
func (r *RedisStateStore) Delete(ctx context.Context, userID string) error {
	key := makeKey(userID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logrus.Errorf("failed to delete state for user %s: %v", userID, err)
		return fmt.Errorf("failed to delete state: %w", err)
	}

	logrus.Infof("deleted state for user %s", userID)
	return nil
}
