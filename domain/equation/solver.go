package equation

import (
	"fmt"
	"math"
)

// DefaultTolerance is the absolute threshold below which a coefficient or
// discriminant is treated as zero. It also decides when a nearly-zero
// leading coefficient turns the equation linear.
const DefaultTolerance = 0.005

// Solver solves equations using a fixed zero tolerance.
type Solver struct {
	tolerance float64
}

// NewSolver creates a Solver with the given tolerance.
func NewSolver(tolerance float64) (Solver, error) {
	if math.IsNaN(tolerance) || math.IsInf(tolerance, 0) || tolerance <= 0 {
		return Solver{}, fmt.Errorf("%w: %v", ErrInvalidTolerance, tolerance)
	}
	return Solver{tolerance: tolerance}, nil
}

// DefaultSolver returns a Solver using DefaultTolerance.
func DefaultSolver() Solver {
	return Solver{tolerance: DefaultTolerance}
}

// Tolerance returns the zero tolerance in use.
func (s Solver) Tolerance() float64 {
	if s.tolerance == 0 {
		return DefaultTolerance
	}
	return s.tolerance
}

// IsZero reports whether |v| is below the solver's tolerance.
func (s Solver) IsZero(v float64) bool {
	return math.Abs(v) < s.Tolerance()
}

// Validate checks e against the solver's preconditions: finite coefficients,
// a discriminant that fits in a float64, and finite roots.
func (s Solver) Validate(e Equation) error {
	_, err := s.checkedSolve(e)
	return err
}

// Solve finds the real roots of e. Callers check e with Validate first;
// Solve panics with the validation error otherwise.
func (s Solver) Solve(e Equation) Solution {
	sol, err := s.checkedSolve(e)
	if err != nil {
		panic(err)
	}
	return sol
}

func (s Solver) checkedSolve(e Equation) (Solution, error) {
	if err := e.Validate(); err != nil {
		return Solution{}, err
	}
	sol := s.solve(e)
	for _, x := range sol.Roots() {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return Solution{}, fmt.Errorf("%w: root of %s overflows", ErrOverflow, e)
		}
	}
	return sol, nil
}

// solve runs the algorithm without checking preconditions. Adding zero turns
// a -0 root into 0.
func (s Solver) solve(e Equation) Solution {
	if s.IsZero(e.A) {
		if s.IsZero(e.B) {
			if s.IsZero(e.C) {
				return InfiniteRoots()
			}
			return NoRoots()
		}
		return OneRoot(-e.C/e.B + 0)
	}

	d := e.Discriminant()
	switch {
	case s.IsZero(d):
		return OneRoot(-e.B/(2*e.A) + 0)
	case d > 0:
		sq := math.Sqrt(d)
		return TwoRoots((-e.B+sq)/(2*e.A)+0, (-e.B-sq)/(2*e.A)+0)
	default:
		return NoRoots()
	}
}

// Solve solves ax^2 + bx + c = 0 with DefaultTolerance.
func Solve(a, b, c float64) Solution {
	return DefaultSolver().Solve(New(a, b, c))
}
