package action

import "errors"

var (
	// ErrNotFound is returned for an action id that is not registered.
	ErrNotFound = errors.New("action not registered")

	// ErrInvalidConfig marks a misconfigured action. It is never retried.
	ErrInvalidConfig = errors.New("invalid action configuration")

	// ErrMissingPlayerContext means the action needs a live session the
	// trigger did not come with. It is never retried.
	ErrMissingPlayerContext = errors.New("missing player context")

	// ErrRetriesExhausted wraps the last error of an action that failed on
	// every attempt.
	ErrRetriesExhausted = errors.New("retry attempts exhausted")
)

// permanent reports whether err should stop the retry loop.
func permanent(err error) bool {
	return errors.Is(err, ErrInvalidConfig) || errors.Is(err, ErrMissingPlayerContext)
}
