// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package common

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	traceIDLogField  = "traceID"
	playerIDLogField = "player_id"
	tracerName       = "button-story"

	// PlayerIDAttribute is the span attribute carrying the player id.
	PlayerIDAttribute = "button_story.player_id"
)

// Scope carries one request's span and a logger tagged with its trace id.
type Scope struct {
	Ctx     context.Context
	TraceID string
	Log     *logrus.Entry
	span    oteltrace.Span
}

// StartScope opens a span named name under whatever trace ctx carries.
func StartScope(ctx context.Context, name string) *Scope {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	traceID := span.SpanContext().TraceID().String()

	return &Scope{
		Ctx:     ctx,
		TraceID: traceID,
		Log:     logrus.WithField(traceIDLogField, traceID),
		span:    span,
	}
}

// ForPlayer tags the span and the logger with the player the request acts on.
func (s *Scope) ForPlayer(playerID string) {
	s.span.SetAttributes(attribute.String(PlayerIDAttribute, playerID))
	s.Log = s.Log.WithField(playerIDLogField, playerID)
}

// Set records a span attribute. Unsupported value types are logged and dropped.
func (s *Scope) Set(key string, value interface{}) {
	switch v := value.(type) {
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.Log.Warnf("could not set span attribute %s of type %T", key, value)
	}
}

// Fail marks the span as failed with err.
func (s *Scope) Fail(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// Finish ends the span.
func (s *Scope) Finish() {
	s.span.End()
}
