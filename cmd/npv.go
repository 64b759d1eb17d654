package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/xirr"
	"github.com/google/subcommands"
)

type npvCmd struct {
	rate float64
}

func (*npvCmd) Name() string     { return "npv" }
func (*npvCmd) Synopsis() string { return "compute the net present value of the cash flows at a rate" }
func (*npvCmd) Usage() string {
	return `xirr npv -rate <rate>

  Prints the net present value of the cash flows, discounted to the earliest date at the
  annual rate, and its derivative with respect to the rate.

Usage Examples:
$ xirr npv -rate 0.05

`
}

func (c *npvCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.rate, "rate", 0, "Annual rate, as a decimal fraction (0.05 is 5%)")
}

func (c *npvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !xirr.Rate(c.rate).Valid() {
		fmt.Fprintf(os.Stderr, "Error: rate %g must be finite and greater than -1\n", c.rate)
		return subcommands.ExitUsageError
	}
	cashflows, status := loadCashflows()
	if status != subcommands.ExitSuccess {
		return status
	}
	series, err := xirr.Normalize(cashflows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitNoRate
	}
	writeNPV(os.Stdout, series, c.rate)
	return subcommands.ExitSuccess
}

func writeNPV(w io.Writer, s *xirr.Series, rate float64) {
	fmt.Fprintf(w, "Rate:       %s\n", xirr.Rate(rate))
	fmt.Fprintf(w, "NPV:        %.6f\n", s.NPV(rate))
	fmt.Fprintf(w, "Derivative: %.6f\n", s.Derivative(rate))
}
