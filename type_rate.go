package xirr

import (
	"fmt"
	"math"
)

// Rate is an annualized rate as a decimal fraction (0.1 is 10% per year).
//
// A meaningful Rate is always greater than -1: at -1 and below the discount factor (1+r)^t is
// undefined or non-positive.
type Rate float64

// Valid reports whether r is in the domain of the discount function.
func (r Rate) Valid() bool { return float64(r) > -1 && !math.IsNaN(float64(r)) && !math.IsInf(float64(r), 0) }

// Percent returns the rate in percent.
func (r Rate) Percent() float64 { return 100 * float64(r) }

// Equal compares rates with a precision of 1e-9.
func (r Rate) Equal(q Rate) bool {
	// it has to be compared with some precision
	const precision = 1e-9
	return math.Abs(float64(r-q)) < precision
}

// String formats the rate as a percentage, e.g. "10.000000%".
func (r Rate) String() string {
	return fmt.Sprintf("%.6f%%", r.Percent())
}

// SignedString is like String but always prints the sign.
func (r Rate) SignedString() string {
	return fmt.Sprintf("%+.6f%%", r.Percent())
}
