// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// DefaultHealthTimeout bounds one health ping.
const DefaultHealthTimeout = 2 * time.Second

// HealthChecker pings the state store's Redis for /healthz. It logs only
// when the result flips so probes do not flood the log.
type HealthChecker struct {
	client  redis.UniversalClient
	timeout time.Duration

	mu     sync.Mutex
	failed bool
}

// NewHealthChecker creates a checker with DefaultHealthTimeout.
func NewHealthChecker(client redis.UniversalClient) *HealthChecker {
	return &HealthChecker{client: client, timeout: DefaultHealthTimeout}
}

// Check pings Redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.client.Ping(ctx).Err()

	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case err != nil && !h.failed:
		logrus.Errorf("state store unhealthy: %v", err)
	case err == nil && h.failed:
		logrus.Info("state store healthy again")
	}
	h.failed = err != nil

	if err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// IsHealthy reports whether a fresh Check succeeds.
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
