// Package ui centralizes the CLI's output channels. Diagnostics (progress
// notices, warnings, debug traces) go through logrus on stderr so verbosity
// and coloring are controlled in one place; user-facing result lines go to
// stdout unadorned so they stay scriptable.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// UI owns the CLI's writers for the lifetime of one invocation.
type UI struct {
	log    *logrus.Logger
	out    io.Writer
	errOut io.Writer
}

// New builds a UI honoring the color and verbosity flags.
func New(noColor, verbose bool) *UI {
	u := &UI{
		log:    logrus.New(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	u.log.SetOutput(os.Stderr)
	u.Configure(noColor, verbose)
	return u
}

// Configure re-applies color and verbosity, for global flags that surface
// after the UI is built.
func (u *UI) Configure(noColor, verbose bool) {
	u.log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    noColor,
		DisableTimestamp: true,
	})
	if verbose {
		u.log.SetLevel(logrus.DebugLevel)
	} else {
		u.log.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects every channel, primarily for tests.
func (u *UI) SetOutput(out, errOut io.Writer) {
	u.out = out
	u.errOut = errOut
	u.log.SetOutput(errOut)
}

// Info emits a progress notice on the diagnostic channel.
func (u *UI) Info(msg string) { u.log.Info(msg) }

// Warn emits a warning on the diagnostic channel.
func (u *UI) Warn(msg string) { u.log.Warn(msg) }

// Debugf emits a trace line, visible only under --verbose.
func (u *UI) Debugf(format string, args ...any) { u.log.Debugf(format, args...) }

// Confirm prints a user-facing result line to stdout.
func (u *UI) Confirm(msg string) { fmt.Fprintln(u.out, msg) }

// Confirmf is Confirm with formatting.
func (u *UI) Confirmf(format string, args ...any) {
	fmt.Fprintf(u.out, format+"\n", args...)
}

// Error prints a user-facing failure to stderr, outside the log format so
// the message reads exactly as written.
func (u *UI) Error(msg string) { fmt.Fprintln(u.errOut, msg) }
