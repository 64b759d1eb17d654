package xirr

import (
	"errors"
	"fmt"
)

// Error kinds returned by Solve. Use errors.Is to tell them apart, and errors.As on
// *ValidationError, *BracketError, *SolveError or *OptionsError to get the details.
var (
	// ErrInsufficientData is returned when fewer than 2 cash flows are supplied.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrNoSignChange is returned when the amounts are all of the same sign (or all zero).
	ErrNoSignChange = errors.New("no sign change")
	// ErrNoBracketFound is returned when the NPV never changes sign on the scanned rate range.
	ErrNoBracketFound = errors.New("no bracket found")
	// ErrSolveFailed is returned when the bracketed solver exceeds its iteration budget.
	ErrSolveFailed = errors.New("solve failed")
	// ErrInvalidOptions is returned when the solver Options are inconsistent.
	ErrInvalidOptions = errors.New("invalid options")
)

// ValidationError reports cash flows that cannot have a meaningful rate.
type ValidationError struct {
	Kind      error // ErrInsufficientData or ErrNoSignChange
	Count     int   // number of cash flows
	Negatives int   // number of strictly negative amounts
	Positives int   // number of strictly positive amounts
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrInsufficientData:
		return fmt.Sprintf("%v: got %d cash flow(s), need at least 2", e.Kind, e.Count)
	case ErrNoSignChange:
		return fmt.Sprintf("%v: %d cash flow(s) with %d negative and %d positive amount(s), need at least one of each", e.Kind, e.Count, e.Negatives, e.Positives)
	default:
		return fmt.Sprintf("invalid cash flows: %v", e.Kind)
	}
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// BracketError reports that no sign change of the NPV was found on the scan grid.
type BracketError struct {
	ScanMin, ScanMax float64
	ScanSteps        int
}

func (e *BracketError) Error() string {
	return fmt.Sprintf("%v: NPV does not change sign between rates %g and %g (%d steps), try another guess or a wider scan range", ErrNoBracketFound, e.ScanMin, e.ScanMax, e.ScanSteps)
}

func (e *BracketError) Unwrap() error { return ErrNoBracketFound }

// SolveError reports that Brent's method did not converge inside a valid bracket.
type SolveError struct {
	Bracket    Bracket
	Iterations int
	Last       float64 // last estimate of the rate
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%v: no convergence in %v after %d iterations (last estimate %g), try a looser tolerance or a higher iteration cap", ErrSolveFailed, e.Bracket, e.Iterations, e.Last)
}

func (e *SolveError) Unwrap() error { return ErrSolveFailed }

// OptionsError wraps the validation failure of Options.
type OptionsError struct {
	Err error
}

func (e *OptionsError) Error() string { return fmt.Sprintf("%v: %v", ErrInvalidOptions, e.Err) }

func (e *OptionsError) Is(target error) bool { return target == ErrInvalidOptions }

func (e *OptionsError) Unwrap() error { return e.Err }

// notConvergedError is the Newton-Raphson give up signal. It never leaves the package: Solve
// recovers from it by falling back to the bracketed solver.
type notConvergedError struct {
	reason    string
	iteration int
	rate      float64
}

func (e *notConvergedError) Error() string {
	return fmt.Sprintf("newton-raphson did not converge: %s (iteration %d, rate %g)", e.reason, e.iteration, e.rate)
}

// ErrorKind returns a stable snake_case identifier for the solver error kinds, or "" for any
// other error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrNoSignChange):
		return "no_sign_change"
	case errors.Is(err, ErrNoBracketFound):
		return "no_bracket_found"
	case errors.Is(err, ErrSolveFailed):
		return "solve_failed"
	case errors.Is(err, ErrInvalidOptions):
		return "invalid_options"
	default:
		return ""
	}
}
