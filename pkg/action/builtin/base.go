// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"github.com/AccelByte/extend-button-story/pkg/action"
)

// Builtin action types, as written in the "type" field of an action entry.
const (
	TypeGrantModifier = "grant_modifier"
	TypeGrantItem     = "grant_item"
	TypeIncrementStat = "increment_stat"
	TypePublishEffect = "publish_effect"
)

type base struct {
	cfg action.Config
}

func (b base) ID() string            { return b.cfg.ID }
func (b base) Config() action.Config { return b.cfg }
