package xirr

import (
	"slices"

	"github.com/etnz/xirr/date"
	"github.com/samber/lo"
)

// DaysPerYear is the day-count convention: elapsed days are divided by 365.25 to get years,
// leap years being accounted for by the exact day count.
const DaysPerYear = 365.25

// Cashflow is a single dated payment.
//
// A negative Amount is money invested (outflow), a positive Amount is money received (inflow).
type Cashflow struct {
	Date   date.Date
	Amount Amount
	Note   string // free text, not used in any computation
}

// Sort returns a copy of cashflows in canonical order: chronological, then by amount for
// flows on the same day.
func Sort(cashflows []Cashflow) []Cashflow {
	sorted := slices.Clone(cashflows)
	slices.SortStableFunc(sorted, func(a, b Cashflow) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.Amount.value.Cmp(b.Amount.value)
	})
	return sorted
}

// Series is the normalized form of a set of cash flows: for each flow, the elapsed time in
// years since the earliest one, and its amount.
//
// Flows on the same day are kept apart, each is discounted on its own.
type Series struct {
	start   date.Date
	times   []float64
	amounts []float64
}

// Normalize validates cashflows and converts them into a Series.
//
// The input order does not matter. It fails with a *ValidationError wrapping
// ErrInsufficientData if there are fewer than 2 cash flows, or ErrNoSignChange if there is not
// at least one strictly negative and one strictly positive amount.
func Normalize(cashflows []Cashflow) (*Series, error) {
	if len(cashflows) < 2 {
		return nil, &ValidationError{Kind: ErrInsufficientData, Count: len(cashflows)}
	}

	negatives := lo.CountBy(cashflows, func(c Cashflow) bool { return c.Amount.IsNegative() })
	positives := lo.CountBy(cashflows, func(c Cashflow) bool { return c.Amount.IsPositive() })
	if negatives == 0 || positives == 0 {
		return nil, &ValidationError{Kind: ErrNoSignChange, Count: len(cashflows), Negatives: negatives, Positives: positives}
	}

	// Canonical order makes the floating point sums independent of the input order.
	sorted := Sort(cashflows)
	s := &Series{
		start:   sorted[0].Date,
		times:   make([]float64, len(sorted)),
		amounts: make([]float64, len(sorted)),
	}
	for i, c := range sorted {
		s.times[i] = float64(c.Date.DaysSince(s.start)) / DaysPerYear
		s.amounts[i] = c.Amount.Float64()
	}
	return s, nil
}

// Len returns the number of flows.
func (s *Series) Len() int { return len(s.times) }

// Start returns the date of the earliest flow, the reference date of the discounting.
func (s *Series) Start() date.Date { return s.start }

// At returns the elapsed years and the amount of the i-th flow in chronological order.
func (s *Series) At(i int) (years, amount float64) { return s.times[i], s.amounts[i] }

// Years returns the elapsed time between the first and the last flow.
func (s *Series) Years() float64 { return s.times[len(s.times)-1] }
