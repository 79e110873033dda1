package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/example/solve-square/domain/equation"
)

var coefficientNames = [3]string{"a", "b", "c"}

// InputError is a user-facing problem with the typed coefficients.
type InputError struct {
	Msg string
	Err error
}

func (e *InputError) Error() string {
	return e.Msg
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ReadCoefficients reads three whitespace-separated numbers from in. The
// numbers may be spread over several lines.
func ReadCoefficients(in io.Reader) (equation.Equation, error) {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)

	var coef [3]float64
	n := 0
	for n < len(coef) && scanner.Scan() {
		v, err := parseCoefficient(coefficientNames[n], scanner.Text())
		if err != nil {
			return equation.Equation{}, err
		}
		coef[n] = v
		n++
	}
	if err := scanner.Err(); err != nil {
		return equation.Equation{}, fmt.Errorf("read coefficients: %w", err)
	}
	if n < len(coef) {
		return equation.Equation{}, &InputError{
			Msg: fmt.Sprintf("expected 3 coefficients, got %d", n),
		}
	}

	eq := equation.New(coef[0], coef[1], coef[2])
	if err := eq.Validate(); err != nil {
		return equation.Equation{}, &InputError{Msg: err.Error(), Err: err}
	}
	return eq, nil
}

func parseCoefficient(name, token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, &InputError{
			Msg: fmt.Sprintf("coefficient %s: %q is not a number", name, token),
			Err: err,
		}
	}
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &InputError{
			Msg: fmt.Sprintf("coefficient %s must be finite", name),
			Err: equation.ErrNonFiniteCoefficient,
		}
	}
	return v, nil
}
