package history

import (
	"time"

	"github.com/example/solve-square/domain/equation"
)

// SolutionInfo is the wire form of a stored solution.
type SolutionInfo struct {
	ID        string            `json:"id"`
	Equation  string            `json:"equation"`
	A         float64           `json:"a"`
	B         float64           `json:"b"`
	C         float64           `json:"c"`
	Solution  equation.Solution `json:"solution"`
	Tolerance float64           `json:"tolerance"`
	Cached    bool              `json:"cached"`
	SolvedAt  time.Time         `json:"solved_at"`
}

// ListSolutionsRequest is the request for the list-solutions service.
type ListSolutionsRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListSolutionsResponse is the response from the list-solutions service.
type ListSolutionsResponse struct {
	Solutions []SolutionInfo `json:"solutions"`
	Count     int            `json:"count"`
	Error     string         `json:"error,omitempty"`
}

// GetSolutionRequest is the request for the get-solution service.
type GetSolutionRequest struct {
	ID string `json:"id"`
}

// GetSolutionResponse is the response from the get-solution service.
type GetSolutionResponse struct {
	Solution *SolutionInfo `json:"solution,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// StatsRequest is the request for the stats service.
type StatsRequest struct{}

// StatsResponse is the response from the stats service.
type StatsResponse struct {
	Stats *Stats `json:"stats,omitempty"`
	Error string `json:"error,omitempty"`
}

func toSolutionInfo(rec *SolutionRecord) (SolutionInfo, error) {
	sol, err := rec.Solution()
	if err != nil {
		return SolutionInfo{}, err
	}
	return SolutionInfo{
		ID:        rec.ID,
		Equation:  rec.Equation().String(),
		A:         rec.A,
		B:         rec.B,
		C:         rec.C,
		Solution:  sol,
		Tolerance: rec.Tolerance,
		Cached:    rec.Cached,
		SolvedAt:  rec.SolvedAt,
	}, nil
}
