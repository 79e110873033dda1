package solver

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/cache"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(_ string, _ ...any) {}
func (m *mockLogger) Info(_ string, _ ...any)  {}
func (m *mockLogger) Warn(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any) {}
func (m *mockLogger) With(_ ...any) types.Logger {
	return m
}
func (m *mockLogger) WithModule(_ string) types.Logger {
	return m
}
func (m *mockLogger) WithError(_ error) types.Logger {
	return m
}

func newMockLogger() types.Logger {
	return &mockLogger{}
}

// memoryCache stores JSON like the Redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    atomic.Int64
	sets    atomic.Int64
	failGet bool
	failSet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) GetSolution(_ context.Context, eq equation.Equation, tol float64) (equation.Solution, bool, error) {
	c.gets.Add(1)
	if c.failGet {
		return equation.Solution{}, false, errors.New("connection refused")
	}
	c.mu.Lock()
	raw, ok := c.data[cache.Key(eq, tol)]
	c.mu.Unlock()
	if !ok {
		return equation.Solution{}, false, nil
	}
	var sol equation.Solution
	return sol, true, json.Unmarshal(raw, &sol)
}

func (c *memoryCache) SetSolution(_ context.Context, eq equation.Equation, tol float64, sol equation.Solution) error {
	c.sets.Add(1)
	if c.failSet {
		return errors.New("connection refused")
	}
	raw, err := json.Marshal(sol)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[cache.Key(eq, tol)] = raw
	c.mu.Unlock()
	return nil
}

func TestService_SolveWithoutCache(t *testing.T) {
	svc := NewService(equation.DefaultSolver(), nil, newMockLogger())

	sol, cached, err := svc.Solve(context.Background(), equation.New(1, -3, 2))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, equation.TwoRoots(2, 1), sol)
}

func TestService_SolveRejectsNonFinite(t *testing.T) {
	svc := NewService(equation.DefaultSolver(), newMemoryCache(), newMockLogger())

	_, _, err := svc.Solve(context.Background(), equation.New(1, 0, posInf()))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEquation)
	assert.Contains(t, err.Error(), "c = +Inf")
}

func TestService_SolveCachesResult(t *testing.T) {
	c := newMemoryCache()
	svc := NewService(equation.DefaultSolver(), c, newMockLogger())
	ctx := context.Background()
	eq := equation.New(1, 2, 1)

	first, cached, err := svc.Solve(ctx, eq)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, equation.OneRoot(-1), first)

	second, cached, err := svc.Solve(ctx, eq)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), c.sets.Load())
}

func TestService_CachesPerTolerance(t *testing.T) {
	c := newMemoryCache()
	eq := equation.New(1, -0.5, 2e-7)

	strict, err := equation.NewSolver(1e-9)
	require.NoError(t, err)

	_, _, err = NewService(equation.DefaultSolver(), c, newMockLogger()).Solve(context.Background(), eq)
	require.NoError(t, err)
	_, fromCache, err := NewService(strict, c, newMockLogger()).Solve(context.Background(), eq)
	require.NoError(t, err)

	assert.False(t, fromCache)
	assert.Contains(t, c.data, "eq:0.005:1:-0.5:2e-07")
	assert.Contains(t, c.data, "eq:1e-09:1:-0.5:2e-07")
}

func TestService_SolveRejectsOverflowingRoot(t *testing.T) {
	c := newMemoryCache()
	svc := NewService(equation.DefaultSolver(), c, newMockLogger())

	_, _, err := svc.Solve(context.Background(), equation.New(0, 0.01, 1e308))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidEquation)
	assert.Contains(t, err.Error(), "coefficients are too large")
	assert.Zero(t, c.sets.Load())
}
