package solver

import (
	"errors"
	"strings"
)

// Sentinel errors for solver operations.
var (
	// ErrInvalidEquation is returned when the coefficients fail validation.
	ErrInvalidEquation = errors.New("invalid equation")

	// ErrNotStarted is returned when a request arrives before Start.
	ErrNotStarted = errors.New("solver not started")
)

// mapServiceError converts error strings from the service back to sentinel
// errors, since error types do not survive the trip over NATS.
func mapServiceError(msg string) error {
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, ErrInvalidEquation.Error()):
		return ErrInvalidEquation
	case strings.Contains(lower, ErrNotStarted.Error()):
		return ErrNotStarted
	default:
		return errors.New(msg)
	}
}
