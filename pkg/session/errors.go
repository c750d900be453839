// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package session

import "errors"

var (
	// ErrClosed is returned when a command reaches a session that has stopped.
	ErrClosed = errors.New("session closed")

	// ErrInvalidUserID is returned for empty or oversized user ids.
	ErrInvalidUserID = errors.New("invalid user id")
)
