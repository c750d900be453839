// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/pipeline"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	ruleBuiltin "github.com/AccelByte/extend-button-story/pkg/rule/builtin"
	"github.com/sirupsen/logrus"
)

// InitRuleEngine builds the rule registry from the pipeline config and wraps
// it in an engine.
//
// Builtin types are tag_match, currency_threshold and streak. Custom types
// call rule.RegisterType before this runs.
func InitRuleEngine(pipelineConfig *pipeline.Config) (*rule.Engine, *rule.Registry, error) {
	ruleBuiltin.Register()

	registry := rule.NewRegistry()
	if err := rule.Load(registry, pipelineConfig.RuleConfigs()); err != nil {
		return nil, nil, fmt.Errorf("failed to load rules: %w", err)
	}

	logrus.WithField("types", rule.Types()).Infof("loaded %d rules", registry.Len())
	return rule.NewEngine(registry), registry, nil
}
