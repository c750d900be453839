// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// ShutdownTimeout bounds the graceful shutdown sequence.
const ShutdownTimeout = 15 * time.Second

// Run starts both servers and blocks until SIGINT or SIGTERM, then shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.grpcServer.Start(ctx); err != nil {
		return err
	}
	if err := a.metricsServer.Start(ctx); err != nil {
		return err
	}
	logrus.Info("application started")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	logrus.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops components in reverse dependency order: servers first so no
// new presses arrive, then sessions so each persists its final state, then
// Redis, then telemetry. Every step runs; the failures are returned together.
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	var errs []error
	step := func(name string, fn func() error) {
		if err := fn(); err != nil {
			logrus.Errorf("%s shutdown error: %v", name, err)
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if a.grpcServer != nil {
		step("gRPC server", func() error { return a.grpcServer.Shutdown(ctx) })
	}
	if a.metricsServer != nil {
		step("metrics server", func() error { return a.metricsServer.Shutdown(ctx) })
	}
	if a.sessions != nil {
		a.sessions.Close()
	}
	if a.redisClient != nil {
		step("redis", a.redisClient.Close)
	}
	if a.shutdownTelemetry != nil {
		step("telemetry", func() error { return a.shutdownTelemetry(ctx) })
	}

	logrus.Info("application shutdown complete")
	return errors.Join(errs...)
}
