// Package xirr computes the internal rate of return of dated, irregularly spaced cash flows
// (XIRR): the annualized rate at which the net present value of all flows is zero.
//
// The computation happens in two steps:
//   - Normalization: the cash flows are converted into elapsed years since the earliest one
//     (days/365.25) and checked: there must be at least two flows, and at least one negative
//     (money invested) and one positive (money received) amount.
//   - Solving: Newton-Raphson with the analytic derivative of the NPV runs first. When it
//     cannot converge (vanishing derivative, step out of the rate domain, iteration budget),
//     the solver scans a grid of rates for a sign change of the NPV and runs Brent's method
//     inside the first bracket found.
//
// Every failure is a typed error: see ErrInsufficientData, ErrNoSignChange,
// ErrNoBracketFound and ErrSolveFailed.
//
// The package is pure: no I/O happens during a solve, and all functions are safe for
// concurrent use. Reading and writing the JSON cash flow file format is provided by
// DecodeCashflows and EncodeCashflows.
//
// This package serves as the foundational logic for the `xirr` command-line tool.
package xirr
