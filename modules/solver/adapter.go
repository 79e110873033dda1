package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// SolverPort is how other modules reach the solver.
type SolverPort interface {
	Solve(ctx context.Context, a, b, c float64) (*SolveResponse, error)
}

// solverAdapter wraps the solver's ServiceContainer.
type solverAdapter struct {
	container mono.ServiceContainer
}

// NewSolverAdapter creates an adapter for the solver services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewSolverAdapter(container mono.ServiceContainer) SolverPort {
	if container == nil {
		panic("solver adapter requires non-nil ServiceContainer")
	}
	return &solverAdapter{container: container}
}

// Solve calls the solve service. A rejected equation comes back as
// ErrInvalidEquation wrapped with the service's message.
func (s *solverAdapter) Solve(ctx context.Context, a, b, c float64) (*SolveResponse, error) {
	req := SolveRequest{A: a, B: b, C: c}
	var resp SolveResponse

	if err := helper.CallRequestReplyService(
		ctx,
		s.container,
		"solve",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("solve service call failed: %w", err)
	}

	if resp.Error != "" {
		return nil, wrapServiceError(resp.Error)
	}
	if resp.Solution == nil {
		return nil, errors.New("solve service returned no solution")
	}

	return &resp, nil
}

func wrapServiceError(msg string) error {
	sentinel := mapServiceError(msg)
	if msg == sentinel.Error() {
		return sentinel
	}
	if errors.Is(sentinel, ErrInvalidEquation) || errors.Is(sentinel, ErrNotStarted) {
		return fmt.Errorf("%w: %s", sentinel, trimSentinel(msg, sentinel))
	}
	return sentinel
}

// trimSentinel drops the sentinel prefix the service already put in msg.
func trimSentinel(msg string, sentinel error) string {
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
