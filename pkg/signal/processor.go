// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"

	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/sirupsen/logrus"
)

// Processor converts engine outcomes into domain signals with enriched context.
type Processor struct {
	namespace string
}

// NewProcessor creates a new signal processor.
func NewProcessor(namespace string) *Processor {
	return &Processor{
		namespace: namespace,
	}
}

// FromOutcome returns one signal per effect tag, in emission order. All
// signals share the same player context built from the outcome state.
func (p *Processor) FromOutcome(userID string, outcome progression.Outcome, session SessionHandle, now time.Time) []Signal {
	if len(outcome.Effects) == 0 {
		return nil
	}

	playerCtx := BuildPlayerContext(userID, p.namespace, outcome.State, session)

	signals := make([]Signal, 0, len(outcome.Effects))
	for _, tag := range outcome.Effects {
		signals = append(signals, NewEffectSignal(tag, userID, now, playerCtx))
	}

	logrus.Debugf("processed %d effects for user %s into signals", len(signals), userID)
	return signals
}

// GetNamespace returns the namespace attached to player contexts.
func (p *Processor) GetNamespace() string {
	return p.namespace
}
