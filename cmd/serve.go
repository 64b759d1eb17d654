package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/etnz/xirr"
	"github.com/etnz/xirr/server"
	"github.com/google/subcommands"
)

type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the solver over HTTP" }
func (*serveCmd) Usage() string {
	return `xirr serve [-addr <host:port>]

  Starts the HTTP API:

    GET  /healthz            liveness probe
    POST /xirr               {"cashflows":[...],"guess":0.1} -> rate and solver diagnostics
    POST /npv?rate=<rate>    {"cashflows":[...]} -> NPV and derivative at the rate

  Stops gracefully on interrupt.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, defaults to $XIRR_ADDR or :8080")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := solverOptions(config(), xirr.DefaultOptions.Guess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:    orDefault(c.addr, config().Addr),
		Log:     *logger(),
		Options: opts,
	})
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error serving: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
