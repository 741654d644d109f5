package cmdregistry

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

// GlobalOptions carries the flags every command honors.
type GlobalOptions struct {
	NoColor bool
	Verbose bool
	Retry   int
}

var globalSpecs = []cliopts.Spec{
	{Name: "no-color", Type: cliopts.Bool, Desc: "Disable output coloring"},
	{Name: "verbose", Type: cliopts.Bool, Aliases: []string{"V"}, Desc: "Enable debug logging"},
	{Name: "retry", Type: cliopts.Int, Aliases: []string{"r"}, Desc: "Retry network operations the given number of times"},
}

// GlobalSpecs returns the option schema behind GlobalOptions. The dispatcher
// merges it into every command's schema so the shared flags work after the
// command token too; help renders it once.
func GlobalSpecs() []cliopts.Spec {
	return append([]cliopts.Spec(nil), globalSpecs...)
}

// Context carries one parsed invocation plus the collaborator handles a
// handler needs. Argv is parsed exactly once; the auto-install repair path
// swaps Runtime for a rebuilt one but never re-parses.
type Context struct {
	// RawArgs is the original argv after the global pre-scan.
	RawArgs []string
	// Command is the resolved primary name.
	Command string
	// Args are the positional tokens left after option parsing.
	Args []string
	// Options are the parsed values for the command's schema.
	Options cliopts.Values
	Global  GlobalOptions

	// Dir is the project root commands operate on.
	Dir      string
	Settings *settings.Settings
	UI       *ui.UI
	Runtime  *deps.Runtime
	Registry *Registry
}

// ResetRuntime discards the memoized dependency state so the next load
// re-reads the manifest and ledger from disk.
func (c *Context) ResetRuntime() {
	c.Runtime = deps.NewRuntime(c.Dir, c.Settings, c.UI)
}

// RunCommand invokes another registered command in-process. The callee
// parses args against its own schema and shares this invocation's settings,
// UI, and freshly visible runtime; the caller's context is left untouched.
func (c *Context) RunCommand(name string, args ...string) error {
	d, ok := c.Registry.Lookup(name)
	if !ok {
		return errkind.UnknownCommandf("Could not find command %q.", name)
	}
	parse := cliopts.Parse
	if d.ForwardArgs {
		parse = cliopts.ParseForward
	}
	vals, rest, err := parse(d.Options, args)
	if err != nil {
		return err
	}
	child := *c
	child.Command = d.Name
	child.Args = rest
	child.Options = vals
	return d.Handler(&child)
}
