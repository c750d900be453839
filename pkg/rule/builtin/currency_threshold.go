package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/rule"
	"github.com/AccelByte/extend-button-story/pkg/signal"
)

// DefaultCurrencyThreshold applies when "threshold" is not configured.
const DefaultCurrencyThreshold = 100

// CurrencyThresholdRule fires on an effect while the player holds at least
// "threshold" of "currency".
type CurrencyThresholdRule struct {
	base
	currency  string
	threshold int64
}

// NewCurrencyThresholdRule creates a currency threshold rule. The currency
// defaults to the click currency.
func NewCurrencyThresholdRule(cfg rule.Config) (*CurrencyThresholdRule, error) {
	threshold := cfg.Parameters.Int("threshold", DefaultCurrencyThreshold)
	if threshold <= 0 {
		return nil, fmt.Errorf("currency_threshold needs a positive threshold, got %d", threshold)
	}

	return &CurrencyThresholdRule{
		base:      newBase(cfg),
		currency:  cfg.Parameters.String("currency", progression.DefaultClickCurrency),
		threshold: int64(threshold),
	}, nil
}

// Evaluate compares the balance the outcome left behind with the threshold.
func (r *CurrencyThresholdRule) Evaluate(ctx context.Context, sig signal.Signal) (*rule.Trigger, error) {
	state, err := stateOf(sig)
	if err != nil {
		return nil, err
	}

	balance := state.Currency(r.currency)
	if balance < r.threshold {
		return nil, nil
	}

	reason := fmt.Sprintf("%s %d >= %d", r.currency, balance, r.threshold)
	return rule.NewTrigger(r.ID(), r.cfg.Priority, sig, reason).
		With("currency", r.currency).
		With("balance", balance), nil
}

func stateOf(sig signal.Signal) (*progression.State, error) {
	pc := sig.Context()
	if pc == nil || pc.State == nil {
		return nil, fmt.Errorf("%s signal carries no player state", sig.Type())
	}
	return pc.State, nil
}
