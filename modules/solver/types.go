package solver

import "github.com/example/solve-square/domain/equation"

// SolveRequest is the request for the solve service.
type SolveRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// SolveResponse is the response from the solve service. Validation failures
// are reported in Error rather than as transport errors.
type SolveResponse struct {
	Equation string             `json:"equation"`
	Solution *equation.Solution `json:"solution,omitempty"`
	Cached   bool               `json:"cached"`
	Error    string             `json:"error,omitempty"`
}
