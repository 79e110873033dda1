package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/solve-square/domain/equation"
)

// Prompt is written before reading the coefficients.
const Prompt = "Enter coefficients: "

// App is the interactive solver.
type App struct {
	solver equation.Solver
}

// New creates an App that solves with s.
func New(s equation.Solver) *App {
	return &App{solver: s}
}

// Run prompts for coefficients on out, reads them from in and prints the
// solution. Bad input is returned as an *InputError.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if _, err := io.WriteString(out, Prompt); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	eq, err := ReadCoefficients(in)
	if err == nil {
		if verr := a.solver.Validate(eq); verr != nil {
			err = &InputError{Msg: verr.Error(), Err: verr}
		}
	}
	if err != nil {
		slog.DebugContext(ctx, "invalid input", "error", err)
		return err
	}

	sol := a.solver.Solve(eq)
	slog.DebugContext(ctx, "solved",
		"equation", eq.String(),
		"kind", string(sol.Kind()),
		"tolerance", a.solver.Tolerance())

	if err := PrintSolution(out, eq, sol); err != nil {
		return fmt.Errorf("write solution: %w", err)
	}
	return nil
}
