package xirr

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Bracket is a rate interval [Low, High] on which the NPV changes sign.
type Bracket struct {
	Low, High float64
}

func (b Bracket) String() string { return fmt.Sprintf("[%g, %g]", b.Low, b.High) }

// ScanPoint is the NPV evaluated at one rate of the scan grid.
type ScanPoint struct {
	Rate float64
	NPV  float64
}

// ScanGrid returns the ScanSteps+1 rates, linearly spaced from ScanMin to ScanMax, on which
// the bracketed solver looks for a sign change.
func (o Options) ScanGrid() []float64 {
	return floats.Span(make([]float64, o.ScanSteps+1), o.ScanMin, o.ScanMax)
}

// Scan evaluates the NPV on the whole scan grid of opts.
func (s *Series) Scan(opts Options) []ScanPoint {
	grid := opts.ScanGrid()
	points := make([]ScanPoint, len(grid))
	for i, r := range grid {
		points[i] = ScanPoint{Rate: r, NPV: s.NPV(r)}
	}
	return points
}

// SignChange reports whether the NPV changes sign between p and q. Non finite values never
// count as a sign change.
func (p ScanPoint) SignChange(q ScanPoint) bool {
	if !isFinite(p.NPV) || !isFinite(q.NPV) || p.NPV == 0 || q.NPV == 0 {
		return false
	}
	return (p.NPV < 0) != (q.NPV < 0)
}

// findBracket walks the scan grid and returns the first adjacent pair of rates with a sign
// change. If the NPV is exactly zero on a grid rate, it returns the degenerate bracket
// [r, r].
func findBracket(s *Series, opts Options) (Bracket, error) {
	grid := opts.ScanGrid()
	prev := ScanPoint{Rate: grid[0], NPV: s.NPV(grid[0])}
	if prev.NPV == 0 {
		return Bracket{prev.Rate, prev.Rate}, nil
	}
	for _, r := range grid[1:] {
		curr := ScanPoint{Rate: r, NPV: s.NPV(r)}
		if curr.NPV == 0 {
			return Bracket{r, r}, nil
		}
		if prev.SignChange(curr) {
			return Bracket{prev.Rate, curr.Rate}, nil
		}
		prev = curr
	}
	return Bracket{}, &BracketError{ScanMin: opts.ScanMin, ScanMax: opts.ScanMax, ScanSteps: opts.ScanSteps}
}

// bracketAndSolve is the robust stage: find a bracket, then run Brent's method inside it.
func bracketAndSolve(s *Series, opts Options) (float64, Bracket, int, error) {
	b, err := findBracket(s, opts)
	if err != nil {
		return 0, Bracket{}, 0, err
	}
	if b.Low == b.High {
		return b.Low, b, 0, nil
	}
	r, iterations, err := brent(s.NPV, b, opts.Tolerance, opts.BrentMaxIterations)
	return r, b, iterations, err
}

// brentRelTol is the relative resolution on the rate below which the bracket is considered
// collapsed.
var brentRelTol = 4 * epsilon

// brent finds a root of f inside b, where f(b.Low) and f(b.High) have opposite signs, using
// Brent's method: inverse quadratic interpolation or secant steps when they make progress,
// bisection otherwise.
//
// It stops when |f(x)| < tol or when the bracket shrinks to the float64 resolution around x.
// In the latter case |f(x)| may still exceed tol: with amounts in the billions, one ulp of the
// rate moves the NPV by more than 1e-6.
func brent(f func(float64) float64, b Bracket, tol float64, maxIter int) (float64, int, error) {
	xpre, xcur := b.Low, b.High
	fpre, fcur := f(xpre), f(xcur)
	var xblk, fblk, spre, scur float64

	if fpre == 0 {
		return xpre, 0, nil
	}
	if fcur == 0 {
		return xcur, 0, nil
	}
	if (fpre < 0) == (fcur < 0) {
		return xcur, 0, &SolveError{Bracket: b, Last: xcur}
	}

	for iter := 1; iter <= maxIter; iter++ {
		if fpre != 0 && fcur != 0 && (fpre < 0) != (fcur < 0) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		// xcur is always the best estimate.
		if math.Abs(fblk) < math.Abs(fcur) {
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (math.SmallestNonzeroFloat64 + brentRelTol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if math.Abs(fcur) < tol || math.Abs(sbis) < delta {
			return xcur, iter, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				// secant
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// inverse quadratic interpolation
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}
		fcur = f(xcur)
	}

	return xcur, maxIter, &SolveError{Bracket: b, Iterations: maxIter, Last: xcur}
}
