// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/pipeline"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// InitPipeline connects outcomes to rules and rules to actions:
// Outcome → Signals → Rules → Actions.
//
// Each enabled rule runs the actions listed under it in config/pipeline.yaml,
// in order. When one fails the earlier revertible ones are undone.
func InitPipeline(
	processor *signal.Processor,
	ruleEngine *rule.Engine,
	actionExecutor *action.Executor,
	pipelineConfig *pipeline.Config,
) *pipeline.Manager {
	bindings := pipelineConfig.Bindings()
	logrus.Infof("configured %d rule-to-action bindings", len(bindings))

	return pipeline.NewManager(processor, ruleEngine, actionExecutor, bindings)
}
