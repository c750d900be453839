package builtin

import (
	"github.com/AccelByte/extend-button-story/pkg/rule"
)

// Builtin rule types, as written in the "type" field of a rule entry.
const (
	TypeTagMatch          = "tag_match"
	TypeCurrencyThreshold = "currency_threshold"
	TypeStreak            = "streak"
)

// base carries the configuration every builtin rule shares.
type base struct {
	cfg         rule.Config
	signalTypes []string
}

func newBase(cfg rule.Config) base {
	return base{cfg: cfg, signalTypes: cfg.SignalTypes()}
}

func (b base) ID() string            { return b.cfg.ID }
func (b base) SignalTypes() []string { return b.signalTypes }
func (b base) Config() rule.Config   { return b.cfg }
