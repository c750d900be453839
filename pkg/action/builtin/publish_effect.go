// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultEffectChannel is the Redis channel effects are published on
	DefaultEffectChannel = "button_story:effects"

	// DefaultFeedLength caps the per-player effect feed list
	DefaultFeedLength = 50

	feedKeyPrefix = "button_story:effect_feed:"
)

// EffectMessage is the payload published for each triggered effect.
type EffectMessage struct {
	UserID     string `json:"userId"`
	RuleID     string `json:"ruleId"`
	Tag        string `json:"tag,omitempty"`
	Key        string `json:"key,omitempty"`
	ClickCount int64  `json:"clickCount"`
	Title      string `json:"title,omitempty"`
	AtEpochMs  int64  `json:"atEpochMs"`
}

// PublishEffectAction publishes triggered effects to a Redis channel for the
// render and audio layers and keeps a short per-player feed for clients
// that poll. Without a client it only logs.
type PublishEffectAction struct {
	base
	client     redis.UniversalClient
	channel    string
	feedLength int
}

// NewPublishEffectAction creates a publish effect action. A feed_length of 0
// disables the feed.
func NewPublishEffectAction(cfg action.Config, client redis.UniversalClient) (*PublishEffectAction, error) {
	channel := cfg.Parameters.String("channel", DefaultEffectChannel)
	if channel == "" {
		return nil, fmt.Errorf("%w: publish_effect channel must not be empty", action.ErrInvalidConfig)
	}
	feedLength := cfg.Parameters.Int("feed_length", DefaultFeedLength)
	if feedLength < 0 {
		return nil, fmt.Errorf("%w: publish_effect feed_length must not be negative", action.ErrInvalidConfig)
	}

	return &PublishEffectAction{
		base:       base{cfg: cfg},
		client:     client,
		channel:    channel,
		feedLength: feedLength,
	}, nil
}

// FeedKey returns the Redis list holding a player's recent effects.
func FeedKey(userID string) string {
	return feedKeyPrefix + userID
}

// Execute publishes the trigger's effect and prepends it to the player feed
// in one transaction.
func (a *PublishEffectAction) Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	msg := EffectMessage{
		UserID:    trigger.UserID,
		RuleID:    trigger.RuleID,
		Tag:       trigger.Tag,
		Key:       trigger.Key,
		AtEpochMs: trigger.At.UnixMilli(),
	}
	if playerCtx != nil && playerCtx.State != nil {
		msg.ClickCount = playerCtx.State.ClickCount
		msg.Title = playerCtx.State.Title
	}

	if a.client == nil {
		logrus.WithFields(logrus.Fields{"user_id": msg.UserID, "tag": msg.Tag}).Warn("no redis client configured, effect not published")
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal effect message: %w", err)
	}

	pipe := a.client.TxPipeline()
	pipe.Publish(ctx, a.channel, payload)
	if a.feedLength > 0 {
		key := FeedKey(msg.UserID)
		pipe.LPush(ctx, key, payload)
		pipe.LTrim(ctx, key, 0, int64(a.feedLength-1))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish effect: %w", err)
	}

	logrus.Debugf("published effect %s for user %s on %s", msg.Tag, msg.UserID, a.channel)
	return nil
}
