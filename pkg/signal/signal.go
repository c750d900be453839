// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"

	"github.com/AccelByte/extend-button-story/pkg/progression"
)

// Signal is one effect tag of an engine outcome, as seen by rules.
type Signal interface {
	// Type is the tag category: "milestone", "rareEvent", "drop", ...
	Type() string
	UserID() string
	// Timestamp is the engine time of the mutation that emitted the tag.
	Timestamp() time.Time
	// Metadata carries at least MetadataTag and MetadataKey.
	Metadata() map[string]interface{}
	Context() *PlayerContext
}

// SessionHandle exposes the mutating engine operations actions may call.
// Actions run on the goroutine that owns the session, so calls through the
// handle need no locking.
type SessionHandle interface {
	GrantModifier(kind, label string, duration time.Duration, now time.Time) *progression.State
}

// PlayerContext is shared by every signal of one outcome. Actions that
// mutate the session replace State so later actions see the change.
type PlayerContext struct {
	UserID    string
	Namespace string
	State     *progression.State
	Session   SessionHandle
}

// BuildPlayerContext creates the context for an outcome's signals.
func BuildPlayerContext(userID, namespace string, state *progression.State, session SessionHandle) *PlayerContext {
	return &PlayerContext{
		UserID:    userID,
		Namespace: namespace,
		State:     state,
		Session:   session,
	}
}
