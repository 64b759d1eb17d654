package xirr

import (
	"errors"
)

// Stage identifies which solver produced a Result.
type Stage int

const (
	// StageNewton is the Newton-Raphson stage with the analytic derivative.
	StageNewton Stage = iota
	// StageBracket is the fallback: bracket scan and Brent's method.
	StageBracket
)

func (s Stage) String() string {
	switch s {
	case StageNewton:
		return "newton"
	case StageBracket:
		return "bracket"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is a converged rate with the solver diagnostics.
type Result struct {
	Rate       Rate
	Stage      Stage
	Iterations int     // iterations of the stage that converged
	Bracket    Bracket // bracket used by StageBracket, zero otherwise
	Fallback   string  // why Newton-Raphson was abandoned, empty for StageNewton
}

// XIRR computes the annualized internal rate of return of cashflows with DefaultOptions.
func XIRR(cashflows []Cashflow) (Result, error) {
	return Solve(cashflows, DefaultOptions)
}

// Solve computes the annualized internal rate of return of cashflows: the rate r > -1 for
// which the net present value of all flows is zero.
//
// It first runs Newton-Raphson from opts.Guess, and falls back to scanning the rate grid for
// a sign change followed by Brent's method. Errors are *OptionsError, *ValidationError,
// *BracketError or *SolveError; see ErrorKind.
func Solve(cashflows []Cashflow, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	s, err := Normalize(cashflows)
	if err != nil {
		return Result{}, err
	}
	return s.solve(opts)
}

// Solve is like the package level Solve on an already normalized series.
func (s *Series) Solve(opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	return s.solve(opts)
}

func (s *Series) solve(opts Options) (Result, error) {
	r, iterations, err := newton(s, opts)
	if err == nil {
		return Result{Rate: Rate(r), Stage: StageNewton, Iterations: iterations}, nil
	}
	var nc *notConvergedError
	if !errors.As(err, &nc) {
		return Result{}, err
	}

	r, bracket, iterations, err := bracketAndSolve(s, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Rate: Rate(r), Stage: StageBracket, Iterations: iterations, Bracket: bracket, Fallback: nc.Error()}, nil
}

// MarshalJSON writes the rate with its diagnostics. The bracket and the fallback reason are
// only present for StageBracket.
func (r Result) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("rate", float64(r.Rate))
	w.Append("percent", r.Rate.String())
	w.Append("stage", r.Stage)
	w.Append("iterations", r.Iterations)
	if r.Stage == StageBracket {
		w.Append("bracket", []float64{r.Bracket.Low, r.Bracket.High})
	}
	w.Optional("fallback", r.Fallback)
	return w.MarshalJSON()
}
