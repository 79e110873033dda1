package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/history"
	"github.com/example/solve-square/modules/solver"
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

// fakeSolver solves locally, the way the solver service would.
type fakeSolver struct {
	calls int
	err   error
}

func (f *fakeSolver) Solve(_ context.Context, a, b, c float64) (*solver.SolveResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if err := equation.DefaultSolver().Validate(equation.New(a, b, c)); err != nil {
		return nil, fmt.Errorf("%w: %v", solver.ErrInvalidEquation, err)
	}
	sol := equation.Solve(a, b, c)
	return &solver.SolveResponse{
		Equation: equation.New(a, b, c).String(),
		Solution: &sol,
		Cached:   f.calls > 1,
	}, nil
}

type fakeHistory struct {
	records   []history.SolutionInfo
	stats     *history.Stats
	err       error
	lastLimit int
}

func (f *fakeHistory) List(_ context.Context, limit int) ([]history.SolutionInfo, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeHistory) Get(_ context.Context, id string) (*history.SolutionInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, history.ErrNotFound
}

func (f *fakeHistory) Stats(_ context.Context) (*history.Stats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func newTestModule(s solver.SolverPort, h history.HistoryPort) *APIModule {
	m := NewModule(3000, &mockLogger{})
	m.solver = s
	m.history = h
	m.app = m.newApp()
	return m
}

func doRequest(t *testing.T, m *APIModule, method, target, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := m.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	return resp.StatusCode, string(raw)
}

func TestSolvePost(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedBody   string
	}{
		{"two roots", `{"a":1,"b":-3,"c":2}`, http.StatusOK, `"kind":"two_roots","roots":[2,1]`},
		{"double root", `{"a":1,"b":2,"c":1}`, http.StatusOK, `"kind":"one_root","roots":[-1]`},
		{"no roots", `{"a":1,"b":0,"c":1}`, http.StatusOK, `"kind":"no_roots"`},
		{"identity", `{"a":0,"b":0,"c":0}`, http.StatusOK, `"kind":"infinite_roots"`},
		{"missing coefficient", `{"a":1,"b":2}`, http.StatusBadRequest, "required"},
		{"malformed body", `{"a":`, http.StatusBadRequest, "invalid_request"},
		{"string coefficient", `{"a":"x","b":1,"c":1}`, http.StatusBadRequest, "invalid_request"},
		{"overflowing discriminant", `{"a":1,"b":1e200,"c":1}`, http.StatusBadRequest, "overflows"},
		{"overflowing linear root", `{"a":0,"b":0.01,"c":1e308}`, http.StatusBadRequest, "coefficients are too large"},
		{"zero root", `{"a":0,"b":3,"c":0}`, http.StatusOK, `"roots":[0]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(&fakeSolver{}, &fakeHistory{})

			status, body := doRequest(t, m, http.MethodPost, "/api/v1/solve", tt.body)

			if status != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", status, tt.expectedStatus, body)
			}
			if !strings.Contains(body, tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", body, tt.expectedBody)
			}
		})
	}
}

func TestSolvePost_ResponseShape(t *testing.T) {
	m := newTestModule(&fakeSolver{}, &fakeHistory{})

	status, body := doRequest(t, m, http.MethodPost, "/api/v1/solve", `{"a":0,"b":3,"c":4}`)
	require.Equal(t, http.StatusOK, status)

	var resp SolveResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.Equal(t, "0x^2+3x+4 = 0", resp.Equation)
	assert.False(t, resp.Cached)

	x, ok := resp.Solution.Root()
	require.True(t, ok)
	assert.InDelta(t, -4.0/3.0, x, 1e-12)
}

func TestSolveQuery(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedBody   string
	}{
		{"valid", "a=2&b=4&c=-4", http.StatusOK, `"kind":"two_roots"`},
		{"missing c", "a=1&b=2", http.StatusBadRequest, "query parameter c is required"},
		{"not a number", "a=1&b=x&c=1", http.StatusBadRequest, `query parameter b: \"x\" is not a number`},
		{"nan", "a=NaN&b=1&c=1", http.StatusBadRequest, "a = NaN"},
		{"infinite", "a=1&b=1&c=Inf", http.StatusBadRequest, "c = +Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSolver{}
			m := newTestModule(s, &fakeHistory{})

			status, body := doRequest(t, m, http.MethodGet, "/api/v1/solve?"+tt.query, "")

			if status != tt.expectedStatus {
				t.Errorf("status = %v, want %v (body %s)", status, tt.expectedStatus, body)
			}
			if !strings.Contains(body, tt.expectedBody) {
				t.Errorf("body = %v, want to contain %v", body, tt.expectedBody)
			}
			if tt.expectedStatus != http.StatusOK && s.calls != 0 {
				t.Errorf("solver called %d times for a rejected request", s.calls)
			}
		})
	}
}

func TestSolve_ServiceErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"invalid equation", fmt.Errorf("%w: coefficient must be finite", solver.ErrInvalidEquation), http.StatusBadRequest},
		{"transport failure", errors.New("solve service call failed: timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(&fakeSolver{err: tt.err}, &fakeHistory{})

			status, _ := doRequest(t, m, http.MethodPost, "/api/v1/solve", `{"a":1,"b":1,"c":1}`)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func sampleHistory() *fakeHistory {
	return &fakeHistory{
		records: []history.SolutionInfo{
			{
				ID:       "b8f1",
				Equation: "1x^2-3x+2 = 0",
				A:        1, B: -3, C: 2,
				Solution:  equation.TwoRoots(2, 1),
				Tolerance: equation.DefaultTolerance,
				SolvedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			},
		},
		stats: &history.Stats{
			Total:  1,
			ByKind: map[string]int64{"two_roots": 1},
		},
	}
}

func TestListHistory(t *testing.T) {
	h := sampleHistory()
	m := newTestModule(&fakeSolver{}, h)

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/history?limit=5", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 5, h.lastLimit)

	var resp ListSolutionsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, equation.TwoRoots(2, 1), resp.Solutions[0].Solution)
}

func TestListHistory_Empty(t *testing.T) {
	m := newTestModule(&fakeSolver{}, &fakeHistory{})

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/history", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"solutions":[]`)
}

func TestListHistory_BadLimit(t *testing.T) {
	m := newTestModule(&fakeSolver{}, sampleHistory())

	for _, q := range []string{"limit=abc", "limit=-1"} {
		status, _ := doRequest(t, m, http.MethodGet, "/api/v1/history?"+q, "")
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestGetHistory(t *testing.T) {
	m := newTestModule(&fakeSolver{}, sampleHistory())

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/history/b8f1", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"equation":"1x^2-3x+2 = 0"`)

	status, body = doRequest(t, m, http.MethodGet, "/api/v1/history/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "not_found")
}

func TestHistoryStats(t *testing.T) {
	m := newTestModule(&fakeSolver{}, sampleHistory())

	status, body := doRequest(t, m, http.MethodGet, "/api/v1/history/stats", "")
	require.Equal(t, http.StatusOK, status)

	var stats history.Stats
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.ByKind["two_roots"])
}

func TestHistory_ServiceFailure(t *testing.T) {
	h := sampleHistory()
	h.err = errors.New("stats service call failed: no responders")
	m := newTestModule(&fakeSolver{}, h)

	status, _ := doRequest(t, m, http.MethodGet, "/api/v1/history/stats", "")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestHealthHandler(t *testing.T) {
	m := newTestModule(&fakeSolver{}, &fakeHistory{})

	status, body := doRequest(t, m, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"healthy"`)
}

func TestUnknownRoute(t *testing.T) {
	m := newTestModule(&fakeSolver{}, &fakeHistory{})

	status, body := doRequest(t, m, http.MethodGet, "/api/v2/solve", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "server_error")
}
