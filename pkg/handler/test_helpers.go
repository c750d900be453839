package handler

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/session"
	"github.com/AccelByte/extend-button-story/pkg/store"
	"github.com/AccelByte/extend-button-story/pkg/theme"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"google.golang.org/protobuf/types/known/structpb"
)

// setupTestService creates a session service backed by miniredis
func setupTestService(t *testing.T) (*SessionService, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	stateStore := store.NewRedisStateStore(client, store.RedisStateStoreConfig{})
	sessions := session.NewManager(theme.Default(), stateStore, nil, session.Config{
		TickInterval: 50 * time.Millisecond,
	}, session.WithSeedSource(func() uint32 { return 1 }))

	t.Cleanup(func() {
		sessions.Close()
		client.Close()
		mr.Close()
	})
	return NewSessionService(sessions), mr
}

// request builds a request struct, failing the test on unsupported values
func request(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	return req
}

// stateOf returns the state struct of a response
func stateOf(t *testing.T, resp *structpb.Struct) map[string]interface{} {
	t.Helper()
	st, ok := resp.AsMap()[FieldState].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no %s: %v", FieldState, resp.AsMap())
	}
	return st
}
