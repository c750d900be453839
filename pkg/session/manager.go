// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/metrics"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/store"
	"github.com/sirupsen/logrus"
)

// Manager starts sessions on demand and tracks the live ones.
type Manager struct {
	theme   *progression.Theme
	store   store.StateStore
	reactor Reactor
	cfg     Config
	seeds   func() uint32
	clock   func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithSeedSource sets the seed generator for new sessions.
func WithSeedSource(fn func() uint32) Option {
	return func(m *Manager) {
		m.seeds = fn
	}
}

// WithClock sets the time source of sessions.
func WithClock(fn func() time.Time) Option {
	return func(m *Manager) {
		m.clock = fn
	}
}

// NewManager creates a session manager. reactor may be nil.
func NewManager(theme *progression.Theme, st store.StateStore, reactor Reactor, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		theme:    theme,
		store:    st,
		reactor:  reactor,
		cfg:      cfg.withDefaults(),
		seeds:    rand.Uint32,
		clock:    time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the live session of userID, loading and starting it when needed.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	if !common.ValidUserID(userID) {
		return nil, ErrInvalidUserID
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrClosed
	}
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	engine, err := m.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}

	s := newSession(userID, engine, m.store, m.reactor, m.cfg, m.clock, m.remove)
	m.sessions[userID] = s
	metrics.ActiveSessions.Inc()
	go s.run()

	logrus.Debugf("started session for %s at count %d", userID, engine.Snapshot().ClickCount)
	return s, nil
}

func (m *Manager) load(ctx context.Context, userID string) (*progression.Engine, error) {
	opt := progression.WithReducedIntensity(m.cfg.ReducedIntensity)
	if m.store == nil {
		return progression.New(m.theme, m.seeds(), opt), nil
	}

	state, err := m.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %s: %w", userID, err)
	}
	if state == nil {
		return progression.New(m.theme, m.seeds(), opt), nil
	}
	return progression.Restore(m.theme, state, opt), nil
}

// With runs fn against the session of userID. When the session stops
// between lookup and use, fn is retried once on a fresh session.
func (m *Manager) With(ctx context.Context, userID string, fn func(*Session) error) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		var s *Session
		s, err = m.Get(ctx, userID)
		if err != nil {
			return err
		}
		if err = fn(s); !errors.Is(err, ErrClosed) {
			return err
		}
		// the stopped session unregisters itself before Done closes
		<-s.Done()
	}
	return err
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) remove(s *Session) {
	m.mu.Lock()
	if cur, ok := m.sessions[s.userID]; ok && cur == s {
		delete(m.sessions, s.userID)
	}
	m.mu.Unlock()
	metrics.ActiveSessions.Dec()
}

// Close stops every session. Sessions persist their final state on the way out.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	logrus.Infof("closed %d sessions", len(sessions))
}
