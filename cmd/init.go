package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/xirr"
	"github.com/google/subcommands"
)

type initCmd struct{}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create a sample cash flow file" }
func (*initCmd) Usage() string {
	return `xirr init

  Writes a sample cash flow file (an initial deposit, a withdrawal, a second deposit and the
  current value) to the cash flow file. An existing file is never overwritten.

Usage Examples:
$ xirr -file account.json init
$ xirr -file account.json solve

`
}

func (*initCmd) SetFlags(f *flag.FlagSet) {}

func (*initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filename := CashflowFile()
	if err := createSample(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Created sample cash flow file %s\n", filename)
	return subcommands.ExitSuccess
}

// createSample writes the sample cash flows to a new file.
func createSample(filename string) error {
	f, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%q already exists, not overwriting it", filename)
	}
	if err != nil {
		return err
	}
	if err := xirr.EncodeCashflows(f, xirr.SampleCashflows()); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", filename, err)
	}
	return f.Close()
}
