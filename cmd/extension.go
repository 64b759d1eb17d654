package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

// Environment variables passed to extensions. They are the ones read by the configuration, so
// that an extension sees the same cash flow file as xirr itself.
const (
	EnvFile     = "XIRR_FILE"
	EnvJSONPath = "XIRR_JSONPATH"
	EnvCurrency = "XIRR_CURRENCY"
	EnvLogLevel = "XIRR_LOG_LEVEL"
)

// RunExtension attempts to find and execute an external xirr-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "xirr-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logger().Debug().Err(err).Str("command", externalCmdName).Msg("external command not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass global flags as environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, EnvFile+"="+CashflowFile())
	cmd.Env = append(cmd.Env, EnvJSONPath+"="+JSONPath())
	cmd.Env = append(cmd.Env, EnvCurrency+"="+Currency())
	cmd.Env = append(cmd.Env, EnvLogLevel+"="+LogLevel())

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
