package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/xirr"
	"github.com/google/subcommands"
)

type fmtCmd struct {
	outputFile string
}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the cash flow file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `xirr fmt [-o <output>]

  Validates and formats the cash flow file. This command reads all cash flows,
  validates them, sorts them by date (then by amount) and writes them back in a
  canonical JSON array, one cash flow per line.
  By default, it formats the file in-place. When -path selects an array inside a
  larger document, use -o to write the array elsewhere.

Usage Examples:
# Formats the default cash flow file.
$ xirr fmt

`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Output file. Formats in-place by default.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cashflows, status := loadCashflows()
	if status != subcommands.ExitSuccess {
		return status
	}

	output := c.outputFile
	if output == "" {
		if JSONPath() != "" {
			fmt.Fprintf(os.Stderr, "Error: formatting in-place would replace the whole document, use -o\n")
			return subcommands.ExitUsageError
		}
		output = CashflowFile()
	}

	var buf bytes.Buffer
	if err := xirr.EncodeCashflows(&buf, xirr.Sort(cashflows)); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting cash flows: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving %q: %v\n", output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "Formatted %d cash flow(s) into %s.\n", len(cashflows), output)
	return subcommands.ExitSuccess
}
