package xirr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options holds the solver parameters.
type Options struct {
	// Guess is the Newton-Raphson starting rate. A guess at or below -1 skips straight to
	// the bracketed solver.
	Guess float64

	// Tolerance is the convergence threshold, both on |NPV(r)| and on the Newton step |Δr|.
	Tolerance float64 `validate:"gt=0"`

	// MaxIterations caps the Newton-Raphson iterations.
	MaxIterations int `validate:"gte=1"`

	// DerivativeThreshold is the minimum |NPV'(r)|. Below it, Newton stops to avoid
	// dividing by near-zero and the bracketed solver takes over.
	DerivativeThreshold float64 `validate:"gte=0"`

	// ScanMin and ScanMax bound the rate grid scanned for a sign change.
	ScanMin float64 `validate:"gt=-1"`
	ScanMax float64 `validate:"gtfield=ScanMin"`

	// ScanSteps is the number of equal intervals of the scan grid.
	ScanSteps int `validate:"gte=1"`

	// BrentMaxIterations caps the iterations of Brent's method inside the bracket.
	BrentMaxIterations int `validate:"gte=1"`
}

// DefaultOptions provides the default solver configuration.
var DefaultOptions = Options{
	Guess:               0.1,
	Tolerance:           1e-9,
	MaxIterations:       100,
	DerivativeThreshold: epsilon,
	ScanMin:             -0.999999,
	ScanMax:             10.0,
	ScanSteps:           200,
	BrentMaxIterations:  100,
}

// epsilon is the float64 machine epsilon.
var epsilon = math.Nextafter(1, 2) - 1

var validate = validator.New()

// WithGuess returns a copy of o with the Newton-Raphson starting rate set to guess.
func (o Options) WithGuess(guess float64) Options {
	o.Guess = guess
	return o
}

// Validate checks that o is a usable configuration.
func (o Options) Validate() error {
	if math.IsNaN(o.ScanMin) || math.IsNaN(o.ScanMax) || math.IsInf(o.ScanMax, 0) {
		return &OptionsError{Err: errors.New("scan range must be finite")}
	}
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &OptionsError{Err: err}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v must be %s %s", fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
	}
	return &OptionsError{Err: errors.New(strings.Join(msgs, "; "))}
}
