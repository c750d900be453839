package builtin

import (
	"github.com/AccelByte/extend-button-story/pkg/rule"
)

// Register makes the builtin rule types available to rule.Build.
func Register() {
	rule.RegisterType(TypeTagMatch, func(cfg rule.Config) (rule.Rule, error) {
		return NewTagMatchRule(cfg)
	})
	rule.RegisterType(TypeCurrencyThreshold, func(cfg rule.Config) (rule.Rule, error) {
		return NewCurrencyThresholdRule(cfg)
	})
	rule.RegisterType(TypeStreak, func(cfg rule.Config) (rule.Rule, error) {
		return NewStreakRule(cfg)
	})
}
