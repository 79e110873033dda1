// Package equation provides the domain types for solving ax^2 + bx + c = 0 over the reals.
package equation

import (
	"fmt"
	"math"
)

// Equation holds the coefficients of ax^2 + bx + c = 0.
type Equation struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
}

// New creates an Equation from its coefficients.
func New(a, b, c float64) Equation {
	return Equation{A: a, B: b, C: c}
}

// Validate reports whether every coefficient is a finite number and the
// discriminant can be computed without overflowing. Whether the roots fit
// depends on the tolerance, see Solver.Validate.
func (e Equation) Validate() error {
	for _, coef := range []struct {
		name  string
		value float64
	}{
		{"a", e.A},
		{"b", e.B},
		{"c", e.C},
	} {
		if math.IsNaN(coef.value) || math.IsInf(coef.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrNonFiniteCoefficient, coef.name, coef.value)
		}
	}
	if d := e.Discriminant(); math.IsInf(d, 0) || math.IsNaN(d) {
		return fmt.Errorf("%w: b^2 - 4ac overflows", ErrOverflow)
	}
	return nil
}

// Eval returns the value of the left-hand side at x.
func (e Equation) Eval(x float64) float64 {
	return e.A*x*x + e.B*x + e.C
}

// Discriminant returns b^2 - 4ac.
func (e Equation) Discriminant() float64 {
	return e.B*e.B - 4*e.A*e.C
}

// Scale returns the equation with every coefficient multiplied by k.
func (e Equation) Scale(k float64) Equation {
	return Equation{A: e.A * k, B: e.B * k, C: e.C * k}
}

// String renders the equation as "1x^2+5x+6 = 0".
func (e Equation) String() string {
	return fmt.Sprintf("%gx^2%+gx%+g = 0", e.A, e.B, e.C)
}
