// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package progression implements the click progression engine: it maps an
// increasing click count, wall time and a seeded random stream onto rewards,
// milestone events and effect tags.
//
// An Engine is owned by a single goroutine. Every operation computes the next
// state on a private copy and swaps it in before returning, so a caller never
// observes a partially applied press.
package progression

import (
	"math"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/milestone"
	"github.com/AccelByte/extend-button-story/pkg/rng"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Effect tag prefixes built by the engine. Milestone, rare and ambient tags
// come verbatim from the theme.
const (
	TagBuffExpired = "buffExpired:"
	TagDrop        = "drop:"
	TagPurchase    = "purchase:"
	TagBranch      = "branch:"
)

// Engine applies presses, ticks and grants to a single session state.
type Engine struct {
	theme    Theme
	table    *milestone.Table
	kinds    map[string]ModifierKind
	upgrades map[string]Upgrade
	state    *State
	reduced  bool
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithReducedIntensity scales rare and ambient probabilities by the theme's
// reduced factor.
func WithReducedIntensity(reduced bool) Option {
	return func(e *Engine) {
		e.reduced = reduced
	}
}

// WithIDGenerator replaces the modifier id source.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// New creates an engine with a fresh state for seed.
func New(theme *Theme, seed uint32, opts ...Option) *Engine {
	e := newEngine(theme, seed, opts)
	e.state = e.freshState(seed)
	return e
}

// Restore creates an engine around a previously persisted state. The state
// is normalized: negative counters are clamped, duplicate modifier kinds are
// collapsed and a negative LastEventIndex is derived from the click count so
// that milestones at or below it are not replayed.
func Restore(theme *Theme, s *State, opts ...Option) *Engine {
	e := newEngine(theme, s.Seed, opts)
	e.state = e.normalize(s.Clone())
	return e
}

func newEngine(theme *Theme, seed uint32, opts []Option) *Engine {
	t := theme.withDefaults()
	e := &Engine{
		theme:    t,
		table:    milestone.NewTable(t.Milestones, t.Generators, seed),
		kinds:    make(map[string]ModifierKind, len(t.ModifierKinds)),
		upgrades: make(map[string]Upgrade, len(t.Upgrades)),
		newID:    func() string { return uuid.NewString() },
	}
	for _, k := range t.ModifierKinds {
		e.kinds[k.Kind] = k
	}
	for _, u := range t.Upgrades {
		e.upgrades[u.ID] = u
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) freshState(seed uint32) *State {
	return &State{
		Currencies: make(map[string]int64),
		Seed:       seed,
		RNGState:   seed,
		Title:      e.theme.InitialTitle,
		Accent:     e.theme.DefaultAccent,
	}
}

func (e *Engine) normalize(s *State) *State {
	if s.Currencies == nil {
		s.Currencies = make(map[string]int64)
	}
	for k, v := range s.Currencies {
		if v < 0 {
			s.Currencies[k] = 0
		}
	}
	if s.ClickCount < 0 {
		s.ClickCount = 0
	}
	if s.Streak < 0 {
		s.Streak = 0
	}
	if s.Streak > e.theme.StreakCap {
		s.Streak = e.theme.StreakCap
	}

	limit := e.table.IndexAfter(s.ClickCount)
	if s.LastEventIndex < 0 || s.LastEventIndex > limit {
		s.LastEventIndex = limit
	}

	byKind := make(map[string]int, len(s.Modifiers))
	kept := s.Modifiers[:0]
	for _, m := range s.Modifiers {
		if i, ok := byKind[m.Kind]; ok {
			if m.ExpiresAtMs > kept[i].ExpiresAtMs {
				kept[i] = m
			}
			continue
		}
		byKind[m.Kind] = len(kept)
		kept = append(kept, m)
	}
	s.Modifiers = kept

	if s.Title == "" {
		s.Title = e.theme.InitialTitle
		if last, ok := e.table.Last(s.ClickCount); ok && last.Title != "" {
			s.Title = last.Title
		}
	}
	return s
}

// ApplyPress registers one press at now.
func (e *Engine) ApplyPress(now time.Time) Outcome {
	nowMs := toMs(now)
	cur := e.state

	if cur.HasPressed && nowMs-cur.LastPressAtMs < e.theme.MinIntervalMs {
		logrus.Debugf("press at %d ignored, last accepted press at %d", nowMs, cur.LastPressAtMs)
		return Outcome{State: cur.Clone()}
	}

	next := cur.Clone()
	r := rng.Resume(next.RNGState)
	var effects []string

	next.ClickCount++
	next.Streak = minInt(next.Streak+1, e.theme.StreakCap)
	next.LastPressAtMs = nowMs
	next.HasPressed = true

	next.addCurrency(e.theme.ClickCurrency, e.pressReward(next, nowMs, r))
	effects = append(effects, e.rollDrops(next, r)...)

	fired, milestoneTitle := e.fireMilestones(next, nowMs)
	effects = append(effects, fired...)

	rare := e.rollEvent(e.theme.RareEvents, 1, r)
	if rare != nil {
		effects = append(effects, rare.Tag)
		next.Effects = addToSet(next.Effects, rare.Effects...)
	}

	switch {
	case milestoneTitle != "":
		next.Title = milestoneTitle
	case rare != nil && rare.Title != "":
		next.Title = rare.Title
	case next.BranchID != "":
		e.advanceBranch(next)
	default:
		next.Title = e.softLine(next.ClickCount)
	}

	next.RNGState = r.State()
	e.state = next
	return Outcome{State: next.Clone(), Effects: effects, Accepted: true}
}

// ApplyTick expires modifiers whose expiry is at or before now and may emit
// one ambient tag scaled by intensity. Counters and currencies are untouched.
func (e *Engine) ApplyTick(now time.Time) Outcome {
	nowMs := toMs(now)
	next := e.state.Clone()
	r := rng.Resume(next.RNGState)

	var effects []string
	var expired []Modifier
	kept := next.Modifiers[:0]
	for _, m := range next.Modifiers {
		if m.ExpiresAtMs <= nowMs {
			expired = append(expired, m)
			continue
		}
		kept = append(kept, m)
	}
	next.Modifiers = kept

	sortByExpiry(expired)
	for _, m := range expired {
		effects = append(effects, TagBuffExpired+m.Kind)
	}

	if intensity := e.theme.Intensity(next.ClickCount); intensity > 0 {
		if ev := e.rollEvent(e.theme.AmbientEvents, intensity, r); ev != nil {
			effects = append(effects, ev.Tag)
		}
	}

	next.RNGState = r.State()
	e.state = next
	return Outcome{State: next.Clone(), Effects: effects, Accepted: true}
}

// GrantModifier adds a modifier of kind expiring duration after now. Granting
// a kind that is already present refreshes it: the expiry becomes the later
// of the two and the label is replaced. Non-positive durations are ignored.
func (e *Engine) GrantModifier(kind, label string, duration time.Duration, now time.Time) *State {
	if kind == "" || duration <= 0 {
		logrus.Debugf("ignoring modifier grant kind=%q duration=%v", kind, duration)
		return e.state.Clone()
	}
	next := e.state.Clone()
	e.grant(next, kind, label, duration.Milliseconds(), toMs(now))
	e.state = next
	return next.Clone()
}

func (e *Engine) grant(s *State, kind, label string, durationMs, nowMs int64) {
	if durationMs <= 0 {
		return
	}
	if _, known := e.kinds[kind]; !known {
		logrus.Debugf("granting modifier of undeclared kind %q, it has no reward effect", kind)
	}

	expires := nowMs + durationMs
	for i := range s.Modifiers {
		if s.Modifiers[i].Kind != kind {
			continue
		}
		if expires > s.Modifiers[i].ExpiresAtMs {
			s.Modifiers[i].ExpiresAtMs = expires
		}
		if label != "" {
			s.Modifiers[i].Label = label
		}
		return
	}

	s.Modifiers = append(s.Modifiers, Modifier{
		ID:          e.newID(),
		Kind:        kind,
		Label:       label,
		ExpiresAtMs: expires,
	})
}

// JumpTo advances the click count to target as if target-ClickCount presses
// had happened at now. Milestones fire in the same order as sequential
// presses. Rewards use the deterministic per-press value; bonus rolls, drops
// and rare events of the skipped presses are not sampled and consume no
// randomness. Targets at or below the current count are ignored.
func (e *Engine) JumpTo(target int64, now time.Time) Outcome {
	cur := e.state
	if target <= cur.ClickCount {
		logrus.Debugf("jump target %d not ahead of count %d", target, cur.ClickCount)
		return Outcome{State: cur.Clone()}
	}

	nowMs := toMs(now)
	next := cur.Clone()
	n := target - next.ClickCount

	next.addCurrency(e.theme.ClickCurrency, satMul(e.baseReward(next, nowMs), n))
	next.ClickCount = target
	next.Streak = int(minInt64(int64(next.Streak)+minInt64(n, int64(e.theme.StreakCap)), int64(e.theme.StreakCap)))

	effects, milestoneTitle := e.fireMilestones(next, nowMs)
	if milestoneTitle != "" {
		next.Title = milestoneTitle
	} else {
		next.Title = e.softLine(next.ClickCount)
	}

	e.state = next
	return Outcome{State: next.Clone(), Effects: effects, Accepted: true}
}

// Reset returns the session to its initial state. The seed is kept and the
// random stream rewinds to it, so resetting twice equals resetting once.
func (e *Engine) Reset() *State {
	e.state = e.freshState(e.state.Seed)
	return e.state.Clone()
}

// ResetStreak zeroes the streak. Idle detection belongs to the caller.
func (e *Engine) ResetStreak() *State {
	if e.state.Streak != 0 {
		next := e.state.Clone()
		next.Streak = 0
		e.state = next
	}
	return e.state.Clone()
}

// Spend removes amount of currency if the balance allows it.
func (e *Engine) Spend(currency string, amount int64) bool {
	if amount <= 0 || e.state.Currency(currency) < amount {
		return false
	}
	next := e.state.Clone()
	next.Currencies[currency] -= amount
	e.state = next
	return true
}

// Purchase spends the upgrade cost and grants its modifier.
func (e *Engine) Purchase(upgradeID string, now time.Time) (Outcome, bool) {
	u, ok := e.upgrades[upgradeID]
	if !ok {
		logrus.Debugf("unknown upgrade %q", upgradeID)
		return Outcome{State: e.state.Clone()}, false
	}
	if e.state.Currency(u.Currency) < u.Cost {
		return Outcome{State: e.state.Clone()}, false
	}

	next := e.state.Clone()
	next.Currencies[u.Currency] -= u.Cost
	e.grant(next, u.Kind, u.Label, u.DurationMs, toMs(now))
	e.state = next
	return Outcome{State: next.Clone(), Effects: []string{TagPurchase + u.ID}, Accepted: true}, true
}

// BranchOptions lists the branches offered by the milestone at the current
// click count.
func (e *Engine) BranchOptions() []string {
	entry, ok := e.table.Lookup(e.state.ClickCount)
	if !ok {
		return nil
	}
	return append([]string(nil), entry.Branches...)
}

// ChooseBranch switches the story onto branch id. It is only allowed while
// the current milestone offers id.
func (e *Engine) ChooseBranch(id string) (Outcome, bool) {
	offered := false
	for _, b := range e.BranchOptions() {
		if b == id {
			offered = true
			break
		}
	}
	steps, known := e.theme.Branches[id]
	if !offered || !known {
		logrus.Debugf("branch %q not available at count %d", id, e.state.ClickCount)
		return Outcome{State: e.state.Clone()}, false
	}

	next := e.state.Clone()
	next.BranchID = id
	next.BranchIndex = 0
	if len(steps) > 0 {
		next.Title = steps[0].Title
		next.Effects = addToSet(next.Effects, steps[0].Effects...)
	}
	e.state = next
	return Outcome{State: next.Clone(), Effects: []string{TagBranch + id}, Accepted: true}, true
}

// SetReducedIntensity toggles the reduced probability mode.
func (e *Engine) SetReducedIntensity(reduced bool) {
	e.reduced = reduced
}

// ReducedIntensity reports whether reduced mode is on.
func (e *Engine) ReducedIntensity() bool {
	return e.reduced
}

// Intensity returns the derived intensity for the current click count.
func (e *Engine) Intensity() float64 {
	return e.theme.Intensity(e.state.ClickCount)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() *State {
	return e.state.Clone()
}

// Table returns the milestone table of this session.
func (e *Engine) Table() *milestone.Table {
	return e.table
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// satMul multiplies two non-negative values, saturating at math.MaxInt64.
func satMul(a, b int64) int64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
