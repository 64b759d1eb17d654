// Package cmd implements the CLI application to compute internal rates of return.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/xirr"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&solveCmd{}, "rate")
	c.Register(&npvCmd{}, "rate")
	c.Register(&scanCmd{}, "rate")

	c.Register(&initCmd{}, "file")
	c.Register(&fmtCmd{}, "file")

	c.Register(&serveCmd{}, "server")
	c.Register(&topicCmd{}, "documentation")
}

// Exit codes, beyond subcommands.ExitSuccess and subcommands.ExitFailure.
const (
	exitFileNotFound subcommands.ExitStatus = 2
	exitInvalidFile  subcommands.ExitStatus = 3
	exitNoRate       subcommands.ExitStatus = 4
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	cashflowFile = flag.String("file", "", "Path to the cash flow file (JSON), defaults to $XIRR_FILE or cashflows.json")
	jsonPath     = flag.String("path", "", "JSONPath of the cash flow array inside the file, defaults to $XIRR_JSONPATH or the whole document")
	currency     = flag.String("currency", "", "ISO 4217 currency code used to display amounts, defaults to $XIRR_CURRENCY")
	logLevel     = flag.String("log-level", "", "Log level (debug, info, warn, error), defaults to $XIRR_LOG_LEVEL or info")
)

// CashflowFile returns the cash flow file selected by the flag or the configuration.
func CashflowFile() string { return orDefault(*cashflowFile, config().File) }

// JSONPath returns the JSONPath of the cash flows inside the file, empty for the whole document.
func JSONPath() string { return orDefault(*jsonPath, config().JSONPath) }

// Currency returns the display currency, possibly empty.
func Currency() string { return orDefault(*currency, config().Currency) }

// LogLevel returns the log level name.
func LogLevel() string { return orDefault(*logLevel, config().LogLevel) }

func orDefault(value, def string) string {
	if value != "" {
		return value
	}
	return def
}

// loadCashflows decodes the cash flow file. On failure, it reports the error and returns the
// exit status to use.
func loadCashflows() ([]xirr.Cashflow, subcommands.ExitStatus) {
	filename := CashflowFile()
	f, err := os.Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: cash flow file %q not found, run \"xirr init\" to create a sample\n", filename)
		return nil, exitFileNotFound
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening cash flow file %q: %v\n", filename, err)
		return nil, exitInvalidFile
	}
	defer f.Close()

	cashflows, err := xirr.DecodeCashflowsAt(f, JSONPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %q: %v\n", filename, err)
		return nil, exitInvalidFile
	}
	logger().Debug().Str("file", filename).Int("cashflows", len(cashflows)).Msg("loaded")
	return cashflows, subcommands.ExitSuccess
}
