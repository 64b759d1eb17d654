package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/xirr"
	"github.com/google/subcommands"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type scanCmd struct {
	min, max float64
	steps    int
}

func (*scanCmd) Name() string     { return "scan" }
func (*scanCmd) Synopsis() string { return "print the NPV over the bracketing rate grid" }
func (*scanCmd) Usage() string {
	return `xirr scan [-min <rate>] [-max <rate>] [-steps <n>]

  Prints the net present value of the cash flows on the grid of rates scanned by the
  bracketed solver, and marks the intervals where the NPV changes sign.
  Useful to understand a "no bracket found" error.

  The grid defaults to $XIRR_SCAN_MIN, $XIRR_SCAN_MAX and $XIRR_SCAN_STEPS.

`
}

func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.min, "min", 0, "Lowest scanned rate, must be greater than -1")
	f.Float64Var(&c.max, "max", 0, "Highest scanned rate")
	f.IntVar(&c.steps, "steps", 0, "Number of intervals of the grid")
}

func (c *scanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := config().SolverOptions()
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "min":
			opts.ScanMin = c.min
		case "max":
			opts.ScanMax = c.max
		case "steps":
			opts.ScanSteps = c.steps
		}
	})
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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
	n, err := writeScan(os.Stdout, series.Scan(opts))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error printing scan: %v\n", err)
		return subcommands.ExitFailure
	}
	if n == 0 {
		fmt.Fprintf(os.Stderr, "No sign change between %g and %g.\n", opts.ScanMin, opts.ScanMax)
	}
	return subcommands.ExitSuccess
}

// writeScan prints the scan as a table and returns the number of sign changes.
func writeScan(w io.Writer, points []xirr.ScanPoint) (int, error) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignRight),
	)
	table.Header("Rate", "NPV", "Sign change")

	changes := 0
	for i, p := range points {
		mark := ""
		if i > 0 && points[i-1].SignChange(p) {
			mark = "<-"
			changes++
		}
		if err := table.Append([]string{xirr.Rate(p.Rate).String(), fmt.Sprintf("%.6f", p.NPV), mark}); err != nil {
			return changes, err
		}
	}
	return changes, table.Render()
}
