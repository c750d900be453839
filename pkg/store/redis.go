// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// RedisConfig holds the connection settings for Redis.
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	MaxRetries   int
	RetryDelayMs int
}

// Connect creates a Redis client and pings it, retrying with exponential
// backoff until MaxRetries attempts have failed.
func Connect(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	addr := cfg.Host + ":" + cfg.Port
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = time.Duration(cfg.RetryDelayMs) * time.Millisecond
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)

	attempt := 0
	err := backoff.RetryNotify(func() error {
		attempt++
		return client.Ping(ctx).Err()
	}, policy, func(err error, delay time.Duration) {
		logrus.Warnf("Redis connection failed (attempt %d/%d): %v, retrying in %v...", attempt, attempts, err, delay)
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s after %d attempts: %w", addr, attempt, err)
	}

	logrus.Infof("connected to Redis at %s (attempt %d/%d)", addr, attempt, attempts)
	return client, nil
}
