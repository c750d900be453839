// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate checks ranges and cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	// Validate server ports
	if c.GRPCPort < 1 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid GRPC_PORT: %d (must be 1-65535)", c.GRPCPort)
	}

	if c.MetricsPort < 1 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.ABNamespace == "" {
		return fmt.Errorf("AB_NAMESPACE is required")
	}
	if c.ABEnabled {
		if c.ABBaseURL == "" || c.ABClientID == "" || c.ABClientSecret == "" {
			return fmt.Errorf("AB_BASE_URL, AB_CLIENT_ID and AB_CLIENT_SECRET are required when AB_ENABLED is true")
		}
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be >= 0)", c.RedisMaxRetries)
	}
	if c.StateSaveAttempts < 1 {
		return fmt.Errorf("invalid STATE_SAVE_ATTEMPTS: %d (must be >= 1)", c.StateSaveAttempts)
	}

	for name, d := range map[string]time.Duration{
		"SESSION_TICK_INTERVAL":     c.TickInterval,
		"SESSION_IDLE_STREAK_RESET": c.IdleStreakReset,
		"SESSION_OP_TIMEOUT":        c.OpTimeout,
		"STATE_TTL":                 c.StateTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s: %v (must be positive)", name, d)
		}
	}
	if c.OtelEnabled && (c.OtelSampleRatio < 0 || c.OtelSampleRatio > 1) {
		return fmt.Errorf("invalid OTEL_SAMPLE_RATIO: %v (must be within [0, 1])", c.OtelSampleRatio)
	}
	if c.EvictAfter < 0 {
		return fmt.Errorf("invalid SESSION_EVICT_AFTER: %v (must be >= 0)", c.EvictAfter)
	}

	return nil
}
