package cli

import (
	"fmt"
	"io"

	"github.com/example/solve-square/domain/equation"
)

// PrintSolution writes the equation followed by its solution.
func PrintSolution(out io.Writer, eq equation.Equation, sol equation.Solution) error {
	if _, err := fmt.Fprintf(out, "Equation: %s\n", eq); err != nil {
		return err
	}

	var err error
	switch sol.Kind() {
	case equation.KindOneRoot:
		x, _ := sol.Root()
		_, err = fmt.Fprintf(out, "Solution: %f\n", x)
	case equation.KindTwoRoots:
		x1, x2, _ := sol.Pair()
		_, err = fmt.Fprintf(out, "Solutions: %f and %f\n", x1, x2)
	case equation.KindInfiniteRoots:
		_, err = fmt.Fprintln(out, "Solution: any real number")
	default:
		_, err = fmt.Fprintln(out, "No solution")
	}
	return err
}
