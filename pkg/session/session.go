// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package session hosts one progression engine per player. Each session is
// owned by a single goroutine that serializes commands and ticks, so the
// engine itself needs no locking.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/metrics"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/signal"
	"github.com/AccelByte/extend-button-story/pkg/store"
	"github.com/sirupsen/logrus"
)

// Reactor receives every outcome that produced effects.
type Reactor interface {
	ProcessOutcome(ctx context.Context, userID string, outcome progression.Outcome, session signal.SessionHandle, now time.Time) error
}

// Config controls session timing.
type Config struct {
	// TickInterval is how often modifiers are expired and ambient events rolled.
	TickInterval time.Duration
	// IdleStreakReset zeroes the streak after this long without a press.
	IdleStreakReset time.Duration
	// EvictAfter stops a session that received no command for this long.
	// Zero disables eviction.
	EvictAfter time.Duration
	// OpTimeout bounds pipeline processing and persistence of one mutation.
	OpTimeout time.Duration
	// ReducedIntensity is the initial accessibility preference of new sessions.
	ReducedIntensity bool
}

// DefaultConfig returns the default session timing.
func DefaultConfig() Config {
	return Config{
		TickInterval:    250 * time.Millisecond,
		IdleStreakReset: 5 * time.Second,
		EvictAfter:      10 * time.Minute,
		OpTimeout:       2 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	if c.IdleStreakReset <= 0 {
		c.IdleStreakReset = d.IdleStreakReset
	}
	if c.OpTimeout <= 0 {
		c.OpTimeout = d.OpTimeout
	}
	return c
}

type request struct {
	run  func(now time.Time)
	done chan struct{}
}

// Session is a running player session.
type Session struct {
	userID  string
	engine  *progression.Engine
	store   store.StateStore
	reactor Reactor
	cfg     Config
	clock   func() time.Time
	onExit  func(*Session)

	cmds     chan request
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	// owned by the run loop
	lastActive time.Time
	savedRNG   uint32
}

func newSession(userID string, engine *progression.Engine, st store.StateStore, reactor Reactor, cfg Config, clock func() time.Time, onExit func(*Session)) *Session {
	return &Session{
		userID:     userID,
		engine:     engine,
		store:      st,
		reactor:    reactor,
		cfg:        cfg,
		clock:      clock,
		onExit:     onExit,
		cmds:       make(chan request),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		lastActive: clock(),
		savedRNG:   engine.Snapshot().RNGState,
	}
}

// UserID returns the owner of the session.
func (s *Session) UserID() string {
	return s.userID
}

// Done is closed once the session has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.exit()
			return
		case req := <-s.cmds:
			now := s.clock()
			s.lastActive = now
			req.run(now)
			close(req.done)
		case <-ticker.C:
			if s.tick(s.clock()) {
				logrus.Debugf("evicting idle session %s", s.userID)
				s.exit()
				return
			}
		}
	}
}

// tick reports whether the session should be evicted.
func (s *Session) tick(now time.Time) bool {
	out := s.engine.ApplyTick(now)
	if len(out.Effects) > 0 {
		out = s.commit(out, now)
	}

	st := out.State
	if st.Streak > 0 && st.HasPressed && now.Sub(time.UnixMilli(st.LastPressAtMs)) >= s.cfg.IdleStreakReset {
		s.engine.ResetStreak()
		s.save()
	}

	return s.cfg.EvictAfter > 0 && now.Sub(s.lastActive) >= s.cfg.EvictAfter
}

func (s *Session) exit() {
	if s.engine.Snapshot().RNGState != s.savedRNG {
		s.save()
	}
	if s.onExit != nil {
		s.onExit(s)
	}
}

// commit runs the reactions for out, persists the result and returns out
// with the state as it stands after the reactions.
func (s *Session) commit(out progression.Outcome, now time.Time) progression.Outcome {
	metrics.ObserveEffects(out.Effects)

	if s.reactor != nil && len(out.Effects) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.OpTimeout)
		// the engine is handed over directly since reactions run on this goroutine
		if err := s.reactor.ProcessOutcome(ctx, s.userID, out, s.engine, now); err != nil {
			logrus.Errorf("failed to process outcome for %s: %v", s.userID, err)
		}
		cancel()
	}

	s.save()
	out.State = s.engine.Snapshot()
	return out
}

func (s *Session) save() {
	if s.store == nil {
		return
	}
	snapshot := s.engine.Snapshot()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.OpTimeout)
	defer cancel()
	if err := s.store.Save(ctx, s.userID, snapshot); err != nil {
		logrus.Errorf("failed to save state for %s: %v", s.userID, err)
		return
	}
	s.savedRNG = snapshot.RNGState
}

func (s *Session) do(ctx context.Context, run func(now time.Time)) error {
	req := request{run: run, done: make(chan struct{})}
	select {
	case s.cmds <- req:
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// A received request always runs to completion and its results are
	// written into the caller's variables, so the caller must not return
	// before it is done. The mutation is applied, so no error is reported.
	<-req.done
	return nil
}

// Press registers one press.
func (s *Session) Press(ctx context.Context) (progression.Outcome, error) {
	var out progression.Outcome
	err := s.do(ctx, func(now time.Time) {
		out = s.engine.ApplyPress(now)
		metrics.ObservePress(out.Accepted)
		if out.Accepted {
			out = s.commit(out, now)
		}
	})
	return out, err
}

// Jump advances the click count to target.
func (s *Session) Jump(ctx context.Context, target int64) (progression.Outcome, error) {
	var out progression.Outcome
	err := s.do(ctx, func(now time.Time) {
		out = s.engine.JumpTo(target, now)
		if out.Accepted {
			out = s.commit(out, now)
		}
	})
	return out, err
}

// Reset returns the session to its initial state.
func (s *Session) Reset(ctx context.Context) (*progression.State, error) {
	var st *progression.State
	err := s.do(ctx, func(now time.Time) {
		s.engine.Reset()
		s.save()
		st = s.engine.Snapshot()
	})
	return st, err
}

// Grant adds or refreshes a modifier.
func (s *Session) Grant(ctx context.Context, kind, label string, duration time.Duration) (*progression.State, error) {
	var st *progression.State
	err := s.do(ctx, func(now time.Time) {
		st = s.engine.GrantModifier(kind, label, duration, now)
		s.save()
	})
	return st, err
}

// Purchase buys an upgrade. The bool is false when the upgrade is unknown,
// already owned or unaffordable.
func (s *Session) Purchase(ctx context.Context, upgradeID string) (progression.Outcome, bool, error) {
	var out progression.Outcome
	var ok bool
	err := s.do(ctx, func(now time.Time) {
		out, ok = s.engine.Purchase(upgradeID, now)
		if ok {
			out = s.commit(out, now)
		}
	})
	return out, ok, err
}

// BranchOptions lists the branches currently open for choice.
func (s *Session) BranchOptions(ctx context.Context) ([]string, error) {
	var options []string
	err := s.do(ctx, func(time.Time) {
		options = s.engine.BranchOptions()
	})
	return options, err
}

// ChooseBranch commits the session to a story branch.
func (s *Session) ChooseBranch(ctx context.Context, branchID string) (progression.Outcome, bool, error) {
	var out progression.Outcome
	var ok bool
	err := s.do(ctx, func(now time.Time) {
		out, ok = s.engine.ChooseBranch(branchID)
		if ok {
			out = s.commit(out, now)
		}
	})
	return out, ok, err
}

// SetReducedIntensity toggles the accessibility preference.
func (s *Session) SetReducedIntensity(ctx context.Context, reduced bool) error {
	return s.do(ctx, func(time.Time) {
		s.engine.SetReducedIntensity(reduced)
	})
}

// Preferences returns the current accessibility preference.
func (s *Session) Preferences(ctx context.Context) (reduced bool, err error) {
	err = s.do(ctx, func(time.Time) {
		reduced = s.engine.ReducedIntensity()
	})
	return reduced, err
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot(ctx context.Context) (*progression.State, error) {
	var st *progression.State
	err := s.do(ctx, func(time.Time) {
		st = s.engine.Snapshot()
	})
	return st, err
}

// Close stops the session and waits for it to persist its final state.
func (s *Session) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
