package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/xirr"
	"github.com/etnz/xirr/renderer"
	"github.com/google/subcommands"
)

type solveCmd struct {
	guess float64
	json  bool
}

func (*solveCmd) Name() string     { return "solve" }
func (*solveCmd) Synopsis() string { return "compute the internal rate of return of the cash flow file" }
func (*solveCmd) Usage() string {
	return `xirr solve [-guess <rate>] [-json]

  Computes the annualized internal rate of return of the cash flows: the rate at which the
  net present value of all flows is zero.

  Newton-Raphson starts from the guess. When it fails, the rate range is scanned for a sign
  change of the NPV and Brent's method finishes inside that bracket.

  Exit status is 2 if the file does not exist, 3 if it is invalid and 4 if no rate could be
  computed.

Usage Examples:
# Solve the default cash flow file.
$ xirr solve

# Solve an array nested in a larger document, as JSON.
$ xirr -file portfolio.json -path '$.flows' solve -json

`
}

func (c *solveCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.guess, "guess", xirr.DefaultOptions.Guess, "Newton-Raphson starting rate")
	f.BoolVar(&c.json, "json", false, "Print the result as JSON")
}

func (c *solveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.run(config())
}

// run solves the cash flow file with the solver configuration of cfg.
func (c *solveCmd) run(cfg Config) subcommands.ExitStatus {
	opts, err := solverOptions(cfg, c.guess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	cashflows, status := loadCashflows()
	if status != subcommands.ExitSuccess {
		return status
	}

	res, err := xirr.Solve(cashflows, opts)
	if err != nil {
		logger().Debug().Err(err).Str("kind", xirr.ErrorKind(err)).Msg("no rate")
		if c.json {
			if werr := writeJSON(os.Stdout, map[string]string{"error": err.Error(), "kind": xirr.ErrorKind(err)}); werr != nil {
				fmt.Fprintf(os.Stderr, "Error writing result: %v\n", werr)
			}
		} else {
			printMarkdown(renderer.RenderFailure(CashflowFile(), err))
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitNoRate
	}
	logger().Debug().
		Str("stage", res.Stage.String()).
		Int("iterations", res.Iterations).
		Str("fallback", res.Fallback).
		Msg("solved")

	if c.json {
		if err := writeJSON(os.Stdout, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.RenderReport(&renderer.Report{
		Source:    CashflowFile(),
		Currency:  Currency(),
		Cashflows: cashflows,
		Result:    res,
	}))
	return subcommands.ExitSuccess
}

// solverOptions returns the solver options of cfg starting from guess. An invalid
// configuration is an error of the environment, not of the cash flows.
func solverOptions(cfg Config, guess float64) (xirr.Options, error) {
	opts := cfg.SolverOptions().WithGuess(guess)
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid XIRR solver configuration: %w", err)
	}
	return opts, nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
