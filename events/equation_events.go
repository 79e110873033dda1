package events

import (
	"time"

	"github.com/example/solve-square/domain/equation"
	"github.com/go-monolith/mono/pkg/helper"
)

// EquationSolvedEvent is emitted after the solver module answers a request.
type EquationSolvedEvent struct {
	Equation  equation.Equation `json:"equation"`
	Tolerance float64           `json:"tolerance"`
	Solution  equation.Solution `json:"solution"`
	Cached    bool              `json:"cached"`
	SolvedAt  time.Time         `json:"solved_at"`
}

// EquationSolvedV1 is the typed event definition for solved equations.
// Subject: events.solver.v1.equation-solved
var EquationSolvedV1 = helper.EventDefinition[EquationSolvedEvent](
	"solver", "EquationSolved", "v1",
)
