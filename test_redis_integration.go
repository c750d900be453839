// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/store"
	"github.com/AccelByte/extend-button-story/pkg/theme"
	"github.com/sirupsen/logrus"
)

// This is a manual integration test for Redis operations
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on REDIS_HOST:REDIS_PORT (default localhost:6379)

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client, err := store.Connect(ctx, store.RedisConfig{
		Host:         common.GetEnv("REDIS_HOST", "localhost"),
		Port:         common.GetEnv("REDIS_PORT", "6379"),
		Password:     common.GetEnv("REDIS_PASSWORD", ""),
		MaxRetries:   3,
		RetryDelayMs: 500,
	})
	if err != nil {
		logrus.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer client.Close()

	stateStore := store.NewRedisStateStore(client, store.RedisStateStoreConfig{TTL: time.Hour})
	storyTheme := theme.Default()

	testUserID := fmt.Sprintf("test-user-%d", time.Now().Unix())
	logrus.Infof("Testing with user ID: %s", testUserID)

	// Test 1: Load state for new player
	logrus.Infof("\n=== Test 1: Load state for new player ===")
	loaded, err := stateStore.Load(ctx, testUserID)
	if err != nil {
		logrus.Fatalf("Load failed: %v", err)
	}
	if loaded != nil {
		logrus.Fatalf("❌ expected no state for a new player, got %+v", loaded)
	}
	logrus.Infof("✓ New player has no stored state")

	// Test 2: Press and save
	logrus.Infof("\n=== Test 2: Press 30 times and save ===")
	engine := progression.New(storyTheme, 12345)
	now := time.Now()
	for i := 0; i < 30; i++ {
		out := engine.ApplyPress(now.Add(time.Duration(i) * 20 * time.Millisecond))
		for _, tag := range out.Effects {
			logrus.Infof("  effect: %s", tag)
		}
	}
	if err := stateStore.Save(ctx, testUserID, engine.Snapshot()); err != nil {
		logrus.Fatalf("Save failed: %v", err)
	}
	logrus.Infof("✓ Saved state at count %d", engine.Snapshot().ClickCount)

	// Test 3: Restore and continue
	logrus.Infof("\n=== Test 3: Restore saved state ===")
	loaded, err = stateStore.Load(ctx, testUserID)
	if err != nil {
		logrus.Fatalf("Load failed: %v", err)
	}
	if loaded == nil || loaded.ClickCount != 30 {
		logrus.Fatalf("❌ ClickCount mismatch: got %+v, expected 30", loaded)
	}
	if loaded.RNGState != engine.Snapshot().RNGState {
		logrus.Fatalf("❌ RNG position mismatch: got %d, expected %d", loaded.RNGState, engine.Snapshot().RNGState)
	}
	restored := progression.Restore(storyTheme, loaded)
	out := restored.ApplyPress(now.Add(time.Second))
	logrus.Infof("✓ Restored session continues at count %d, title %q", out.State.ClickCount, out.State.Title)

	// Test 4: TTL
	logrus.Infof("\n=== Test 4: Verify TTL ===")
	ttl, err := client.TTL(ctx, store.KeyPrefix+testUserID).Result()
	if err != nil {
		logrus.Fatalf("TTL failed: %v", err)
	}
	logrus.Infof("✓ TTL: %v", ttl)

	// Test 5: Cleanup
	logrus.Infof("\n=== Test 5: Cleanup ===")
	if err := stateStore.Delete(ctx, testUserID); err != nil {
		logrus.Fatalf("Delete failed: %v", err)
	}
	logrus.Infof("✓ Deleted test state")

	logrus.Infof("\n✅ All Redis integration tests passed!")
}
