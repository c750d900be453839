// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/progression"
)

func TestBaseSignal(t *testing.T) {
	timestamp := time.Now()
	metadata := map[string]interface{}{
		"test_key": "test_value",
	}
	playerCtx := &PlayerContext{
		UserID:    "user123",
		State:     &progression.State{},
		Namespace: "test-namespace",
	}

	signal := NewBaseSignal("test_type", "user123", timestamp, metadata, playerCtx)

	if signal.Type() != "test_type" {
		t.Errorf("Expected type 'test_type', got '%s'", signal.Type())
	}

	if signal.UserID() != "user123" {
		t.Errorf("Expected userID 'user123', got '%s'", signal.UserID())
	}

	if !signal.Timestamp().Equal(timestamp) {
		t.Errorf("Expected timestamp %v, got %v", timestamp, signal.Timestamp())
	}

	if signal.Metadata()["test_key"] != "test_value" {
		t.Errorf("Expected metadata test_key='test_value', got '%v'", signal.Metadata()["test_key"])
	}

	if signal.Context() != playerCtx {
		t.Errorf("Expected context to match")
	}
}

func TestBaseSignal_NilMetadata(t *testing.T) {
	signal := NewBaseSignal("test", "user1", time.Now(), nil, nil)

	if signal.Metadata() == nil {
		t.Error("Expected non-nil metadata map")
	}
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		tag          string
		expectedType string
		expectedKey  string
	}{
		{"milestone:ghostTap", "milestone", "ghostTap"},
		{"buffExpired:taxHoliday", "buffExpired", "taxHoliday"},
		{"m5", TypeEffect, "m5"},
		{":orphan", TypeEffect, ":orphan"},
		{"milestone:echo:150", "milestone", "echo:150"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			gotType, gotKey := SplitTag(tt.tag)
			if gotType != tt.expectedType || gotKey != tt.expectedKey {
				t.Errorf("SplitTag(%q) = (%q, %q), expected (%q, %q)", tt.tag, gotType, gotKey, tt.expectedType, tt.expectedKey)
			}
		})
	}
}

func TestProcessor_FromOutcome(t *testing.T) {
	processor := NewProcessor("test-namespace")
	now := time.Now()
	outcome := progression.Outcome{
		State:   &progression.State{ClickCount: 5, Streak: 5},
		Effects: []string{"drop:echoes", "milestone:listens", "rareEvent:autoTap"},
	}

	signals := processor.FromOutcome("user1", outcome, nil, now)
	if len(signals) != 3 {
		t.Fatalf("Expected 3 signals, got %d", len(signals))
	}

	expectedTypes := []string{"drop", "milestone", "rareEvent"}
	for i, sig := range signals {
		if sig.Type() != expectedTypes[i] {
			t.Errorf("signal %d type = %s, expected %s", i, sig.Type(), expectedTypes[i])
		}
		if Tag(sig) != outcome.Effects[i] {
			t.Errorf("signal %d tag = %s, expected %s", i, Tag(sig), outcome.Effects[i])
		}
		if sig.Context().Namespace != "test-namespace" {
			t.Errorf("signal %d namespace = %s", i, sig.Context().Namespace)
		}
	}

	if signals[0].Context() != signals[2].Context() {
		t.Error("expected signals of one outcome to share their player context")
	}
	if got := signals[0].Context().State.ClickCount; got != 5 {
		t.Errorf("ClickCount = %d, expected 5", got)
	}
}

func TestProcessor_FromOutcome_NoEffects(t *testing.T) {
	processor := NewProcessor("ns")
	if signals := processor.FromOutcome("user1", progression.Outcome{State: &progression.State{}}, nil, time.Now()); signals != nil {
		t.Errorf("Expected no signals, got %d", len(signals))
	}
}
