package xirr

import (
	"fmt"
	"math"
)

// newton finds a root of the NPV with Newton-Raphson and the analytic derivative, starting
// from opts.Guess. It returns the rate and the number of iterations, or a *notConvergedError
// whenever it gives up: the step leaves the rate domain, the derivative vanishes, or the
// iteration budget runs out.
func newton(s *Series, opts Options) (float64, int, error) {
	r := opts.Guess
	if !(r > -1) {
		return r, 0, &notConvergedError{reason: "guess is not above -1", rate: r}
	}

	for iter := 1; iter <= opts.MaxIterations; iter++ {
		f, df := s.npvAndDerivative(r)

		if !isFinite(f) {
			return r, iter, &notConvergedError{reason: "NPV is not finite", iteration: iter, rate: r}
		}
		if math.Abs(f) < opts.Tolerance {
			return r, iter, nil
		}
		if !isFinite(df) || math.Abs(df) <= opts.DerivativeThreshold {
			return r, iter, &notConvergedError{reason: fmt.Sprintf("derivative too small (%g)", df), iteration: iter, rate: r}
		}

		next := r - f/df
		if !(next > -1) {
			return r, iter, &notConvergedError{reason: fmt.Sprintf("step to %g leaves the rate domain", next), iteration: iter, rate: r}
		}
		if math.Abs(next-r) < opts.Tolerance {
			return next, iter, nil
		}
		r = next
	}

	return r, opts.MaxIterations, &notConvergedError{reason: fmt.Sprintf("no convergence after %d iterations", opts.MaxIterations), iteration: opts.MaxIterations, rate: r}
}
