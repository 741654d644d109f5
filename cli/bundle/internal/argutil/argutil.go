// Package argutil normalizes help-flag invocations before dispatch. A help
// flag anywhere in the argv turns the invocation into a help request, with
// one ambiguity to settle: `--help exec` and `exec --help` must both read
// as "help for exec" rather than letting exec swallow the flag as part of
// the child argv.
package argutil

import (
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

var helpFlags = map[string]bool{"--help": true, "-h": true}

// exec spellings, including its registered aliases.
var execAliases = map[string]bool{"exec": true, "ex": true, "e": true}

// HasHelpFlag reports whether args contains a help flag token.
func HasHelpFlag(args []string) bool {
	for _, a := range args {
		if helpFlags[a] {
			return true
		}
	}
	return false
}

// ReformatHelp rewrites an argv containing a help flag into a canonical
// help invocation. When the first help flag and the first exec alias are
// the argv's first two tokens in either order, the pair means "help exec".
// Otherwise the first token naming a known command gets the help page; with
// no such token the argv is not a command at all.
func ReformatHelp(args []string, known map[string]struct{}) ([]string, error) {
	helpAt, execAt := -1, -1
	for i, a := range args {
		if helpAt == -1 && helpFlags[a] {
			helpAt = i
		}
		if execAt == -1 && execAliases[a] {
			execAt = i
		}
	}
	if helpAt >= 0 && execAt >= 0 && helpAt+execAt == 1 {
		return []string{"help", "exec"}, nil
	}
	for _, a := range args {
		if _, ok := known[a]; ok {
			return []string{"help", a}, nil
		}
	}
	return nil, errkind.UnknownCommandf("Could not find command %q.", strings.Join(args, " "))
}
