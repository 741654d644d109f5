package errkind

import (
	"errors"
	"fmt"
)

// ExitStatus reports a child process exit code the CLI must mirror. The
// entrypoint passes it through without printing anything; the child already
// wrote its own diagnostics.
type ExitStatus struct {
	Code int
}

func (e *ExitStatus) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Exit wraps a nonzero child exit code. Zero maps to nil so callers can
// return it unconditionally after a spawn.
func Exit(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitStatus{Code: code}
}

// ExitCode maps an error to the process exit status: nil is success, a
// mirrored child status keeps its code, and everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var status *ExitStatus
	if errors.As(err, &status) {
		return status.Code
	}
	return 1
}
