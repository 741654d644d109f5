// Package execx spawns child processes attached to the CLI's standard
// streams. Plugin commands, external bundler-<name> executables, and the
// exec/open/console commands all go through here so exit codes are surfaced
// the same way everywhere.
package execx

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Result carries a finished command's exit code and raw error.
type Result struct {
	Code int
	Err  error
}

// Run spawns name with args and blocks until it exits. The child inherits
// stdin, stdout, and stderr.
func Run(name string, args ...string) Result {
	return RunCtx(context.Background(), name, args...)
}

// RunCtx is Run with a context; a deadline hit reports code 124.
func RunCtx(ctx context.Context, name string, args ...string) Result {
	if os.Getenv("BUNDLE_DEBUG") == "1" {
		fmt.Fprintf(os.Stderr, "+ %s\n", strings.Join(append([]string{name}, args...), " "))
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else if ctx.Err() == context.DeadlineExceeded {
			code = 124
		} else {
			code = 1
		}
	}
	return Result{Code: code, Err: err}
}
