// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// Example:
//   NewFeature bool `env:"ENABLE_NEW_FEATURE" envDefault:"false"`
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"ExtendButtonStory"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// AccelByte configuration (required when AB_ENABLED is true)
	// ============================================================
	ABEnabled      bool   `env:"AB_ENABLED" envDefault:"false"`
	ABNamespace    string `env:"AB_NAMESPACE" envDefault:"accelbyte"`
	ABBaseURL      string `env:"AB_BASE_URL"`
	ABClientID     string `env:"AB_CLIENT_ID"`
	ABClientSecret string `env:"AB_CLIENT_SECRET"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	StateTTL          time.Duration `env:"STATE_TTL" envDefault:"720h"`
	StateSaveAttempts int           `env:"STATE_SAVE_ATTEMPTS" envDefault:"3"`

	// ============================================================
	// Story configuration
	// ============================================================
	ConfigPath string `env:"CONFIG_PATH" envDefault:"config/pipeline.yaml"`
	// ThemePath selects a YAML theme. Empty uses the built-in story.
	ThemePath string `env:"THEME_PATH"`

	// ============================================================
	// Session configuration
	// ============================================================
	TickInterval     time.Duration `env:"SESSION_TICK_INTERVAL" envDefault:"250ms"`
	IdleStreakReset  time.Duration `env:"SESSION_IDLE_STREAK_RESET" envDefault:"5s"`
	EvictAfter       time.Duration `env:"SESSION_EVICT_AFTER" envDefault:"10m"`
	OpTimeout        time.Duration `env:"SESSION_OP_TIMEOUT" envDefault:"2s"`
	ReducedIntensity bool          `env:"REDUCED_INTENSITY" envDefault:"false"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled        bool    `env:"OTEL_ENABLED" envDefault:"true"`
	OtelServiceName    string  `env:"OTEL_SERVICE_NAME" envDefault:"extend-button-story"`
	OtelZipkinEndpoint string  `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT" envDefault:"http://localhost:9411/api/v2/spans"`
	OtelSampleRatio    float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}
