// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-button-story/internal/config"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/session"
	"github.com/AccelByte/extend-button-story/pkg/store"
	"github.com/AccelByte/extend-button-story/pkg/theme"
	"github.com/sirupsen/logrus"
)

// InitTheme loads the theme at path, or the built-in story when path is empty.
func InitTheme(path string) (*progression.Theme, error) {
	if path == "" {
		t := theme.Default()
		logrus.Infof("using built-in theme %q", t.Name)
		return t, nil
	}

	t, err := theme.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	logrus.Infof("loaded theme %q from %s", t.Name, path)
	return t, nil
}

// InitSessionManager creates the manager hosting one session per player.
func InitSessionManager(cfg *config.Config, t *progression.Theme, stateStore store.StateStore, reactor session.Reactor) *session.Manager {
	manager := session.NewManager(t, stateStore, reactor, session.Config{
		TickInterval:     cfg.TickInterval,
		IdleStreakReset:  cfg.IdleStreakReset,
		EvictAfter:       cfg.EvictAfter,
		OpTimeout:        cfg.OpTimeout,
		ReducedIntensity: cfg.ReducedIntensity,
	})
	logrus.Infof("initialized session manager (tick %v, evict after %v)", cfg.TickInterval, cfg.EvictAfter)
	return manager
}
