// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_TICK_INTERVAL", "100ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GRPCPort != 6565 {
		t.Errorf("GRPCPort = %d, expected 6565", cfg.GRPCPort)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 100ms", cfg.TickInterval)
	}
	if cfg.EvictAfter != 10*time.Minute {
		t.Errorf("EvictAfter = %v, expected 10m", cfg.EvictAfter)
	}
	if cfg.StateTTL != 30*24*time.Hour {
		t.Errorf("StateTTL = %v, expected 720h", cfg.StateTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func validConfig() Config {
	return Config{
		GRPCPort:          6565,
		MetricsPort:       8080,
		LogLevel:          "info",
		ABNamespace:       "accelbyte",
		RedisMaxRetries:   5,
		StateTTL:          time.Hour,
		StateSaveAttempts: 3,
		TickInterval:      250 * time.Millisecond,
		IdleStreakReset:   5 * time.Second,
		EvictAfter:        10 * time.Minute,
		OpTimeout:         2 * time.Second,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "grpc port out of range", mutate: func(c *Config) { c.GRPCPort = 0 }, wantErr: true},
		{name: "metrics port out of range", mutate: func(c *Config) { c.MetricsPort = 70000 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "missing namespace", mutate: func(c *Config) { c.ABNamespace = "" }, wantErr: true},
		{name: "accelbyte enabled without credentials", mutate: func(c *Config) { c.ABEnabled = true }, wantErr: true},
		{
			name: "accelbyte enabled with credentials",
			mutate: func(c *Config) {
				c.ABEnabled = true
				c.ABBaseURL = "https://demo.accelbyte.io"
				c.ABClientID = "id"
				c.ABClientSecret = "secret"
			},
		},
		{name: "zero tick interval", mutate: func(c *Config) { c.TickInterval = 0 }, wantErr: true},
		{name: "negative eviction", mutate: func(c *Config) { c.EvictAfter = -time.Second }, wantErr: true},
		{name: "eviction disabled", mutate: func(c *Config) { c.EvictAfter = 0 }},
		{name: "no save attempts", mutate: func(c *Config) { c.StateSaveAttempts = 0 }, wantErr: true},
		{name: "sample ratio above one", mutate: func(c *Config) { c.OtelEnabled = true; c.OtelSampleRatio = 1.5 }, wantErr: true},
		{name: "sample ratio ignored when tracing is off", mutate: func(c *Config) { c.OtelSampleRatio = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
