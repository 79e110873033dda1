package api

import (
	"github.com/example/solve-square/domain/equation"
	"github.com/example/solve-square/modules/history"
)

// SolveRequest is the HTTP request for solving an equation. Pointers make a
// missing coefficient distinguishable from zero.
type SolveRequest struct {
	A *float64 `json:"a"`
	B *float64 `json:"b"`
	C *float64 `json:"c"`
}

// SolveResponse is the HTTP response for a solved equation.
type SolveResponse struct {
	Equation string            `json:"equation"`
	Solution equation.Solution `json:"solution"`
	Cached   bool              `json:"cached"`
}

// ListSolutionsResponse is the HTTP response for the history list.
type ListSolutionsResponse struct {
	Solutions []history.SolutionInfo `json:"solutions"`
	Total     int                    `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
