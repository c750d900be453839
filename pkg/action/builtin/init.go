package builtin

import (
	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/go-redis/redis/v8"
)

// Dependencies are the clients builtin actions reach out to. A nil client
// makes the matching action log instead of calling out.
type Dependencies struct {
	ItemGranter     ItemGranter
	StatIncrementer StatIncrementer
	RedisClient     redis.UniversalClient
	Namespace       string
}

// Register makes the builtin action types available to action.Build.
func Register(deps Dependencies) {
	action.RegisterType(TypeGrantModifier, func(cfg action.Config) (action.Action, error) {
		return NewGrantModifierAction(cfg)
	})
	action.RegisterType(TypeGrantItem, func(cfg action.Config) (action.Action, error) {
		return NewGrantItemAction(cfg, deps.ItemGranter, deps.Namespace)
	})
	action.RegisterType(TypeIncrementStat, func(cfg action.Config) (action.Action, error) {
		return NewIncrementStatAction(cfg, deps.StatIncrementer, deps.Namespace)
	})
	action.RegisterType(TypePublishEffect, func(cfg action.Config) (action.Action, error) {
		return NewPublishEffectAction(cfg, deps.RedisClient)
	})
}
