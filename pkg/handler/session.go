// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/AccelByte/extend-button-story/pkg/common"
	"github.com/AccelByte/extend-button-story/pkg/progression"
	"github.com/AccelByte/extend-button-story/pkg/session"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// SessionService serves player sessions over gRPC
type SessionService struct {
	sessions *session.Manager
}

// NewSessionService creates a new session service
func NewSessionService(sessions *session.Manager) *SessionService {
	return &SessionService{
		sessions: sessions,
	}
}

// Press registers one press of the button
func (h *SessionService) Press(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.Press")
	defer scope.Finish()

	var out progression.Outcome
	err := h.with(scope, req, func(s *session.Session) (err error) {
		out, err = s.Press(scope.Ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcomeResponse(out, out.Accepted)
}

// Jump advances the click count to the requested target
func (h *SessionService) Jump(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.Jump")
	defer scope.Finish()

	target, ok := numberField(req, FieldTarget)
	if !ok || target < 0 || target > MaxJumpTarget || target != math.Trunc(target) {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a whole number between 0 and %d", FieldTarget, int64(MaxJumpTarget))
	}

	var out progression.Outcome
	err := h.with(scope, req, func(s *session.Session) (err error) {
		out, err = s.Jump(scope.Ctx, int64(target))
		return err
	})
	if err != nil {
		return nil, err
	}
	scope.Set("button_story.jump_target", int64(target))
	return outcomeResponse(out, out.Accepted)
}

// Reset returns the player's story to its start
func (h *SessionService) Reset(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.Reset")
	defer scope.Finish()

	var st *progression.State
	err := h.with(scope, req, func(s *session.Session) (err error) {
		st, err = s.Reset(scope.Ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	scope.Log.Info("story reset")
	return stateResponse(st, nil)
}

// GrantModifier adds or refreshes a timed modifier
func (h *SessionService) GrantModifier(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.GrantModifier")
	defer scope.Finish()

	kind := stringField(req, FieldKind)
	if kind == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", FieldKind)
	}
	durationMs, ok := numberField(req, FieldDurationMs)
	if !ok || durationMs <= 0 || durationMs > MaxGrantDurationMs {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be between 1 and %d", FieldDurationMs, MaxGrantDurationMs)
	}
	label := stringField(req, FieldLabel)

	var st *progression.State
	err := h.with(scope, req, func(s *session.Session) (err error) {
		st, err = s.Grant(scope.Ctx, kind, label, time.Duration(durationMs)*time.Millisecond)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stateResponse(st, nil)
}

// Purchase buys an upgrade with story currency
func (h *SessionService) Purchase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.Purchase")
	defer scope.Finish()

	upgradeID := stringField(req, FieldUpgradeID)
	if upgradeID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", FieldUpgradeID)
	}

	var out progression.Outcome
	var bought bool
	err := h.with(scope, req, func(s *session.Session) (err error) {
		out, bought, err = s.Purchase(scope.Ctx, upgradeID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcomeResponse(out, bought)
}

// ChooseBranch commits the story to one of the offered branches
func (h *SessionService) ChooseBranch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.ChooseBranch")
	defer scope.Finish()

	branchID := stringField(req, FieldBranchID)
	if branchID == "" {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", FieldBranchID)
	}

	var out progression.Outcome
	var chosen bool
	err := h.with(scope, req, func(s *session.Session) (err error) {
		out, chosen, err = s.ChooseBranch(scope.Ctx, branchID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return outcomeResponse(out, chosen)
}

// SetPreferences updates the accessibility preference of the session
func (h *SessionService) SetPreferences(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.SetPreferences")
	defer scope.Finish()

	v, ok := req.GetFields()[FieldReducedIntensity]
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s is required", FieldReducedIntensity)
	}
	if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a boolean", FieldReducedIntensity)
	}
	reduced := v.GetBoolValue()

	err := h.with(scope, req, func(s *session.Session) error {
		return s.SetReducedIntensity(scope.Ctx, reduced)
	})
	if err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]interface{}{FieldReducedIntensity: reduced})
}

// GetState returns the current state with the open branch choices
func (h *SessionService) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	scope := common.StartScope(ctx, "SessionService.GetState")
	defer scope.Finish()

	var st *progression.State
	var options []string
	var reduced bool
	err := h.with(scope, req, func(s *session.Session) (err error) {
		if st, err = s.Snapshot(scope.Ctx); err != nil {
			return err
		}
		if options, err = s.BranchOptions(scope.Ctx); err != nil {
			return err
		}
		reduced, err = s.Preferences(scope.Ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stateResponse(st, map[string]interface{}{
		FieldBranchOptions:    stringList(options),
		FieldReducedIntensity: reduced,
	})
}

func (h *SessionService) with(scope *common.Scope, req *structpb.Struct, fn func(*session.Session) error) error {
	userID := stringField(req, FieldPlayerID)
	if !common.ValidUserID(userID) {
		return status.Errorf(codes.InvalidArgument, "invalid %s", FieldPlayerID)
	}
	scope.ForPlayer(userID)

	if err := h.sessions.With(scope.Ctx, userID, fn); err != nil {
		scope.Fail(err)
		scope.Log.Errorf("session call failed: %v", err)
		return toStatus(err)
	}
	return nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidUserID):
		return status.Errorf(codes.InvalidArgument, "%v", err)
	case errors.Is(err, session.ErrClosed):
		return status.Errorf(codes.Unavailable, "%v", err)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%v", err)
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%v", err)
	default:
		return status.Errorf(codes.Internal, "session call failed: %v", err)
	}
}
