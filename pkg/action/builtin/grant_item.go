package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclient/fulfillment"
	"github.com/AccelByte/accelbyte-go-sdk/platform-sdk/pkg/platformclientmodels"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/repository"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/extend-button-story/pkg/action"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/sirupsen/logrus"
)

// ItemGranter fulfills a platform item for a player.
type ItemGranter interface {
	GrantItem(ctx context.Context, namespace, userID, itemID string, quantity int32) error
}

// GrantItemAction fulfills "item_id" for the player, usually as a story
// milestone reward. Without a granter it only logs.
type GrantItemAction struct {
	base
	granter   ItemGranter
	namespace string
	itemID    string
	quantity  int32
}

// NewGrantItemAction creates a grant item action.
func NewGrantItemAction(cfg action.Config, granter ItemGranter, namespace string) (*GrantItemAction, error) {
	itemID := cfg.Parameters.String("item_id", "")
	if itemID == "" {
		return nil, fmt.Errorf("%w: grant_item needs an item_id", action.ErrInvalidConfig)
	}
	quantity := cfg.Parameters.Int("quantity", 1)
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: grant_item quantity must be positive, got %d", action.ErrInvalidConfig, quantity)
	}

	return &GrantItemAction{
		base:      base{cfg: cfg},
		granter:   granter,
		namespace: namespace,
		itemID:    itemID,
		quantity:  int32(quantity),
	}, nil
}

// Execute fulfills the item.
func (a *GrantItemAction) Execute(ctx context.Context, trigger *rule.Trigger, playerCtx *signal.PlayerContext) error {
	log := logrus.WithFields(logrus.Fields{
		"user_id":  trigger.UserID,
		"item_id":  a.itemID,
		"quantity": a.quantity,
		"tag":      trigger.Tag,
	})

	if a.granter == nil {
		log.Warn("no item granter configured, skipping fulfillment")
		return nil
	}

	if err := a.granter.GrantItem(ctx, a.namespace, trigger.UserID, a.itemID, a.quantity); err != nil {
		return fmt.Errorf("failed to grant item %s: %w", a.itemID, err)
	}

	log.Info("item granted")
	return nil
}

// AccelByteItemGranter grants items through the AccelByte Platform
// fulfillment API.
type AccelByteItemGranter struct {
	fulfillmentService platform.FulfillmentService
}

// NewAccelByteItemGranter creates an item granter backed by the platform service.
func NewAccelByteItemGranter(configRepo repository.ConfigRepository, tokenRepo repository.TokenRepository) *AccelByteItemGranter {
	return &AccelByteItemGranter{
		fulfillmentService: platform.FulfillmentService{
			Client:           factory.NewPlatformClient(configRepo),
			ConfigRepository: configRepo,
			TokenRepository:  tokenRepo,
		},
	}
}

// GrantItem fulfills an item as a reward.
func (g *AccelByteItemGranter) GrantItem(ctx context.Context, namespace, userID, itemID string, quantity int32) error {
	input := &fulfillment.FulfillItemParams{
		Namespace: namespace,
		UserID:    userID,
		Body: &platformclientmodels.FulfillmentRequest{
			ItemID:   itemID,
			Quantity: &quantity,
			Source:   platformclientmodels.FulfillmentRequestSourceREWARD,
		},
	}

	resp, err := g.fulfillmentService.FulfillItemShort(input)
	if err != nil {
		return fmt.Errorf("fulfill item: %w", err)
	}
	if resp == nil {
		return fmt.Errorf("fulfill item: empty response")
	}
	return nil
}
