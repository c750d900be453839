// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package metrics holds the Prometheus collectors of the session service.
package metrics

import (
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "button_story"

// Press results.
const (
	ResultAccepted  = "accepted"
	ResultDebounced = "debounced"
)

// Reaction action results.
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultReverted = "reverted"
)

var (
	// PressesTotal counts presses by result.
	PressesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "presses_total",
			Help:      "Total number of button presses by result",
		},
		[]string{"result"},
	)

	// EffectsTotal counts emitted effect tags by category.
	EffectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_total",
			Help:      "Total number of effect tags emitted by category",
		},
		[]string{"kind"},
	)

	// ActiveSessions tracks live session actors.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live player sessions",
		},
	)

	// ModifiersExpiredTotal counts modifiers removed by ticks.
	ModifiersExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "modifiers_expired_total",
			Help:      "Total number of modifiers that expired",
		},
	)

	// TriggersTotal counts rule triggers admitted by the rule engine.
	TriggersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaction_triggers_total",
			Help:      "Total number of rule triggers by rule",
		},
		[]string{"rule_id"},
	)

	// ActionsTotal counts reaction action runs by outcome.
	ActionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reaction_actions_total",
			Help:      "Total number of reaction actions run by action and result",
		},
		[]string{"action_id", "result"},
	)
)

// Collectors returns every collector of this package for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		PressesTotal,
		EffectsTotal,
		ActiveSessions,
		ModifiersExpiredTotal,
		TriggersTotal,
		ActionsTotal,
	}
}

// ObservePress records the result of one press.
func ObservePress(accepted bool) {
	if accepted {
		PressesTotal.WithLabelValues(ResultAccepted).Inc()
		return
	}
	PressesTotal.WithLabelValues(ResultDebounced).Inc()
}

// ObserveEffects counts effect tags by category.
func ObserveEffects(effects []string) {
	for _, tag := range effects {
		kind, _ := signal.SplitTag(tag)
		EffectsTotal.WithLabelValues(kind).Inc()
		if kind+":" == progression.TagBuffExpired {
			ModifiersExpiredTotal.Inc()
		}
	}
}

// ObserveTrigger counts one trigger of ruleID.
func ObserveTrigger(ruleID string) {
	TriggersTotal.WithLabelValues(ruleID).Inc()
}

// ObserveAction records one action run. A reverted action counts as
// reverted rather than ok.
func ObserveAction(actionID string, ok, reverted bool) {
	result := ResultFailed
	switch {
	case reverted:
		result = ResultReverted
	case ok:
		result = ResultOK
	}
	ActionsTotal.WithLabelValues(actionID, result).Inc()
}
