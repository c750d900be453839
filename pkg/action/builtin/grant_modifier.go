// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// DefaultModifierDuration applies when "duration" is not configured.
const DefaultModifierDuration = 30 * time.Second

// GrantModifierAction grants a timed modifier on the player's live session.
// The grant is stamped with the trigger time so it expires on the engine clock.
type GrantModifierAction struct {
	base
	kind     string
	label    string
	duration time.Duration
}

// NewGrantModifierAction creates a grant modifier action. "kind" is required;
// "duration" accepts "30s" or a millisecond count.
func NewGrantModifierAction(cfg action.Config) (*GrantModifierAction, error) {
	kind := cfg.Parameters.String("kind", "")
	if kind == "" {
		return nil, fmt.Errorf("%w: grant_modifier needs a kind", action.ErrInvalidConfig)
	}
	duration := cfg.Parameters.Duration("duration", DefaultModifierDuration)
	if duration <= 0 {
		return nil, fmt.Errorf("%w: grant_modifier duration must be positive", action.ErrInvalidConfig)
	}

	return &GrantModifierAction{
		base:     base{cfg: cfg},
		kind:     kind,
		label:    cfg.Parameters.String("label", kind),
		duration: duration,
	}, nil
}

// Execute grants the modifier through the session handle and refreshes the
// context's state so later actions see it.
func (a *GrantModifierAction) Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	if playerCtx == nil || playerCtx.Session == nil {
		return action.ErrMissingPlayerContext
	}

	playerCtx.State = playerCtx.Session.GrantModifier(a.kind, a.label, a.duration, trigger.At)

	logrus.WithFields(logrus.Fields{
		"user_id":  trigger.UserID,
		"rule_id":  trigger.RuleID,
		"kind":     a.kind,
		"duration": a.duration.String(),
	}).Info("modifier granted")
	return nil
}
