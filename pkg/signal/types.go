// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"strings"
	"time"
)

const (
	// TypeEffect is the signal type for tags without a category prefix.
	TypeEffect = "effect"

	// MetadataTag holds the full effect tag.
	MetadataTag = "tag"
	// MetadataKey holds the part of the tag after the category prefix.
	MetadataKey = "key"
)

// BaseSignal is a generic Signal implementation.
type BaseSignal struct {
	signalType string
	userID     string
	timestamp  time.Time
	metadata   map[string]interface{}
	context    *PlayerContext
}

// NewBaseSignal creates a new signal. A nil metadata map is replaced by an empty one.
func NewBaseSignal(signalType, userID string, timestamp time.Time, metadata map[string]interface{}, context *PlayerContext) *BaseSignal {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &BaseSignal{
		signalType: signalType,
		userID:     userID,
		timestamp:  timestamp,
		metadata:   metadata,
		context:    context,
	}
}

// Type implements Signal interface.
func (s *BaseSignal) Type() string {
	return s.signalType
}

// UserID implements Signal interface.
func (s *BaseSignal) UserID() string {
	return s.userID
}

// Timestamp implements Signal interface.
func (s *BaseSignal) Timestamp() time.Time {
	return s.timestamp
}

// Metadata implements Signal interface.
func (s *BaseSignal) Metadata() map[string]interface{} {
	return s.metadata
}

// Context implements Signal interface.
func (s *BaseSignal) Context() *PlayerContext {
	return s.context
}

// NewEffectSignal wraps an effect tag. "milestone:ghostTap" becomes a signal
// of type "milestone" with key "ghostTap".
func NewEffectSignal(tag, userID string, timestamp time.Time, context *PlayerContext) *BaseSignal {
	signalType, key := SplitTag(tag)
	return NewBaseSignal(signalType, userID, timestamp, map[string]interface{}{
		MetadataTag: tag,
		MetadataKey: key,
	}, context)
}

// SplitTag splits a tag into its category and key.
func SplitTag(tag string) (string, string) {
	category, key, found := strings.Cut(tag, ":")
	if !found || category == "" {
		return TypeEffect, tag
	}
	return category, key
}

// Tag returns the full effect tag carried by sig, if any.
func Tag(sig Signal) string {
	tag, _ := sig.Metadata()[MetadataTag].(string)
	return tag
}
