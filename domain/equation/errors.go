package equation

import "errors"

var (
	// ErrNonFiniteCoefficient indicates a NaN or infinite coefficient was provided.
	ErrNonFiniteCoefficient = errors.New("coefficient must be finite")
	// ErrOverflow indicates finite coefficients whose discriminant or roots
	// do not fit in a float64.
	ErrOverflow = errors.New("coefficients are too large")
	// ErrInvalidTolerance indicates the zero tolerance is not a positive finite number.
	ErrInvalidTolerance = errors.New("tolerance must be a positive finite number")
	// ErrUnknownKind indicates an unrecognised solution kind while decoding.
	ErrUnknownKind = errors.New("unknown solution kind")
)
