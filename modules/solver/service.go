package solver

import (
	"context"
	"fmt"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"golang.org/x/sync/singleflight"
)

// SolutionCache is the subset of the cache plugin used by the solver.
type SolutionCache interface {
	GetSolution(ctx context.Context, eq equation.Equation, tolerance float64) (equation.Solution, bool, error)
	SetSolution(ctx context.Context, eq equation.Equation, tolerance float64, sol equation.Solution) error
}

// Service solves equations with an optional cache in front.
type Service struct {
	solver  equation.Solver
	cache   SolutionCache
	logger  types.Logger
	sfGroup singleflight.Group
}

// NewService creates a solver service. cache may be nil.
func NewService(solver equation.Solver, cache SolutionCache, logger types.Logger) *Service {
	return &Service{
		solver: solver,
		cache:  cache,
		logger: logger,
	}
}

// Tolerance returns the zero tolerance of the underlying solver.
func (s *Service) Tolerance() float64 {
	return s.solver.Tolerance()
}

// Solve validates eq and returns its solution. The boolean reports whether
// the answer came from the cache.
func (s *Service) Solve(ctx context.Context, eq equation.Equation) (equation.Solution, bool, error) {
	if err := s.solver.Validate(eq); err != nil {
		return equation.Solution{}, false, fmt.Errorf("%w: %v", ErrInvalidEquation, err)
	}

	if s.cache == nil {
		return s.solver.Solve(eq), false, nil
	}

	tol := s.solver.Tolerance()
	key := cache.Key(eq, tol)

	cached, found, err := s.cache.GetSolution(ctx, eq, tol)
	if err != nil {
		s.logger.Warn("Cache lookup failed", "key", key, "error", err)
	}
	if found {
		return cached, true, nil
	}

	val, _, _ := s.sfGroup.Do(key, func() (any, error) {
		sol := s.solver.Solve(eq)
		if err := s.cache.SetSolution(ctx, eq, tol, sol); err != nil {
			s.logger.Warn("Cache store failed", "key", key, "error", err)
		}
		return sol, nil
	})

	return val.(equation.Solution), false, nil
}
