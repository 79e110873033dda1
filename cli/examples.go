package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/example/solve-square/domain/equation"
)

const (
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

// Example is a reference equation with its known solution.
type Example struct {
	Label    string
	Equation equation.Equation
	Want     equation.Solution
}

// Examples are the reference equations the self-check runs.
var Examples = []Example{
	{"3x + 4 = 0", equation.New(0, 3, 4), equation.OneRoot(-4.0 / 3)},
	{"4 = 0", equation.New(0, 0, 4), equation.NoRoots()},
	{"0 = 0", equation.New(0, 0, 0), equation.InfiniteRoots()},
	{"x^2 - 2x + 1 = 0", equation.New(1, -2, 1), equation.OneRoot(1)},
	{"x^2 + 5x + 6 = 0", equation.New(1, 5, 6), equation.TwoRoots(-2, -3)},
	{"x^2 + 5x = 0", equation.New(1, 5, 0), equation.TwoRoots(0, -5)},
	{"x^2 + 6 = 0", equation.New(1, 0, 6), equation.NoRoots()},
	{"2x^2 - 6 = 0", equation.New(4, 0, -6), equation.TwoRoots(math.Sqrt(1.5), -math.Sqrt(1.5))},
}

// rootEpsilon absorbs the rounding of the quadratic formula.
const rootEpsilon = 1e-9

// RunExamples solves every example with s, prints a pass or fail line for
// each and returns how many failed. Lines for equations with roots end with
// the largest |f(x)| over the computed roots.
func RunExamples(out io.Writer, s equation.Solver, color bool) int {
	failed := 0
	for i, ex := range Examples {
		got := s.Solve(ex.Equation)
		ok := sameSolution(got, ex.Want)
		if !ok {
			failed++
		}
		line := fmt.Sprintf("%-10s %s {%s}", fmt.Sprintf("Test #%d", i+1), status(ok, color), ex.Label)
		if r, has := residual(ex.Equation, got); has {
			line += fmt.Sprintf(" residual=%.1e", r)
		}
		fmt.Fprintln(out, line)
	}
	return failed
}

// residual is the largest |eq(x)| over the roots of sol. It reports false
// when sol has no finite set of roots to check.
func residual(eq equation.Equation, sol equation.Solution) (float64, bool) {
	roots := sol.Roots()
	if len(roots) == 0 {
		return 0, false
	}
	worst := 0.0
	for _, x := range roots {
		worst = math.Max(worst, math.Abs(eq.Eval(x)))
	}
	return worst, true
}

func status(ok, color bool) string {
	word, code := "passed", ansiGreen
	if !ok {
		word, code = "failed", ansiRed
	}
	if !color {
		return word
	}
	return code + word + ansiReset
}

func sameSolution(got, want equation.Solution) bool {
	if got.Kind() != want.Kind() {
		return false
	}
	g, w := got.Roots(), want.Roots()
	for i := range w {
		if math.Abs(g[i]-w[i]) > rootEpsilon {
			return false
		}
	}
	return true
}
