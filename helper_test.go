package xirr

import "github.com/etnz/xirr/date"

// CF is a helper for test to create a cash flow from const.
func CF(on string, amount float64) Cashflow {
	return Cashflow{Date: date.MustParse(on), Amount: A(amount)}
}

// example is the sample cash flow set: deposit, withdrawal, deposit, current value.
func example() []Cashflow {
	return []Cashflow{
		CF("2025-03-23", -16000),
		CF("2025-06-01", 12000),
		CF("2025-08-11", -700),
		CF("2025-11-18", 4921),
	}
}

// exampleRate is the XIRR of example().
const exampleRate = 0.0433197039987

// series builds a Series directly from elapsed years and amounts.
func series(times, amounts []float64) *Series {
	return &Series{times: times, amounts: amounts}
}
