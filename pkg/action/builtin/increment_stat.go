package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/repository"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclient/user_statistic"
	"github.com/AccelByte/accelbyte-go-sdk/social-sdk/pkg/socialclientmodels"
	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// StatIncrementer adds to a player statistic. Negative increments are allowed.
type StatIncrementer interface {
	IncrementStat(ctx context.Context, namespace, userID, statCode string, inc float64) error
}

// IncrementStatAction adds "inc" (default 1) to the player statistic
// "stat_code", e.g. to count milestones reached. It can be reverted by
// applying the opposite increment.
type IncrementStatAction struct {
	base
	incrementer StatIncrementer
	namespace   string
	statCode    string
	inc         float64
}

// NewIncrementStatAction creates an increment stat action.
func NewIncrementStatAction(cfg action.Config, incrementer StatIncrementer, namespace string) (*IncrementStatAction, error) {
	statCode := cfg.Parameters.String("stat_code", "")
	if statCode == "" {
		return nil, fmt.Errorf("%w: increment_stat needs a stat_code", action.ErrInvalidConfig)
	}
	inc := cfg.Parameters.Float("inc", 1)
	if inc == 0 {
		return nil, fmt.Errorf("%w: increment_stat inc must not be zero", action.ErrInvalidConfig)
	}

	return &IncrementStatAction{
		base:        base{cfg: cfg},
		incrementer: incrementer,
		namespace:   namespace,
		statCode:    statCode,
		inc:         inc,
	}, nil
}

// Execute increments the statistic.
func (a *IncrementStatAction) Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	return a.apply(ctx, trigger.UserID, a.inc)
}

// Revert subtracts what Execute added.
func (a *IncrementStatAction) Revert(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	return a.apply(ctx, trigger.UserID, -a.inc)
}

func (a *IncrementStatAction) apply(ctx context.Context, userID string, inc float64) error {
	log := logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"stat_code": a.statCode,
		"inc":       inc,
	})

	if a.incrementer == nil {
		log.Warn("no stat incrementer configured, skipping")
		return nil
	}

	if err := a.incrementer.IncrementStat(ctx, a.namespace, userID, a.statCode, inc); err != nil {
		return fmt.Errorf("failed to increment stat %s: %w", a.statCode, err)
	}

	log.Debug("stat incremented")
	return nil
}

// AccelByteStatIncrementer increments statistics through the AccelByte
// Social API.
type AccelByteStatIncrementer struct {
	statisticService *social.UserStatisticService
}

// NewAccelByteStatIncrementer creates a stat incrementer backed by the social service.
func NewAccelByteStatIncrementer(configRepo repository.ConfigRepository, tokenRepo repository.TokenRepository) *AccelByteStatIncrementer {
	return &AccelByteStatIncrementer{
		statisticService: &social.UserStatisticService{
			Client:           factory.NewSocialClient(configRepo),
			ConfigRepository: configRepo,
			TokenRepository:  tokenRepo,
		},
	}
}

// IncrementStat adds inc to the user's stat item.
func (s *AccelByteStatIncrementer) IncrementStat(ctx context.Context, namespace, userID, statCode string, inc float64) error {
	input := &user_statistic.IncUserStatItemValueParams{
		Namespace: namespace,
		UserID:    userID,
		StatCode:  statCode,
		Body:      &socialclientmodels.StatItemInc{Inc: inc},
	}

	if _, err := s.statisticService.IncUserStatItemValueShort(input); err != nil {
		return fmt.Errorf("increment user %s statistic %s: %w", userID, statCode, err)
	}
	return nil
}
