// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-button-story/pkg/action/builtin"
	"github.com/AccelByte/extend-button-story/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// InitActionExecutor builds the action registry from the pipeline config and
// wraps it in an executor.
//
// Builtin types are grant_modifier, grant_item, increment_stat and
// publish_effect. Services missing from deps leave the matching actions in
// log-only mode.
func InitActionExecutor(pipelineConfig *pipeline.Config, deps actionBuiltin.Dependencies) (*action.Executor, *action.Registry, error) {
	actionBuiltin.Register(deps)

	registry := action.NewRegistry()
	if err := action.Load(registry, pipelineConfig.Actions); err != nil {
		return nil, nil, fmt.Errorf("failed to load actions: %w", err)
	}

	logrus.WithField("types", action.Types()).Infof("loaded %d actions", registry.Len())
	return action.NewExecutor(registry), registry, nil
}
