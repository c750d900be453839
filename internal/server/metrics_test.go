// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMetricsServer_ExposesStoryMetrics(t *testing.T) {
	m := NewMetricsServer(8080, "/metrics")
	if err := m.Setup(); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "button_story_active_sessions") {
		t.Error("expected button_story_active_sessions in metrics output")
	}
}

func TestMetricsServer_HealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		check    func(ctx context.Context) error
		expected int
	}{
		{name: "healthy", check: func(ctx context.Context) error { return nil }, expected: http.StatusOK},
		{name: "unhealthy", check: func(ctx context.Context) error { return errors.New("redis down") }, expected: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetricsServer(8080, "/metrics").WithHealthCheck(tt.check)
			if err := m.Setup(); err != nil {
				t.Fatalf("Setup() error = %v", err)
			}

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			if rec.Code != tt.expected {
				t.Errorf("status = %d, expected %d", rec.Code, tt.expected)
			}
		})
	}
}
