// Package dispatch resolves a command name to exactly one action: a
// registered handler, a plugin-owned command, an external bundler-<name>
// executable, or an unknown-command failure. Resolution returns a tagged
// value consumed by a single switch in Run, so each invocation takes
// exactly one of the four paths.
package dispatch

import (
	"os/exec"

	"github.com/kayger44/rubygems/cli/bundle/internal/autoinstall"
	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/execx"
	"github.com/kayger44/rubygems/cli/bundle/internal/plugins"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

// ExecPrefix is the naming convention external command executables follow.
const ExecPrefix = "bundler-"

// Kind tags a resolution outcome.
type Kind int

const (
	KindUnresolved Kind = iota
	KindInternal
	KindPlugin
	KindExternal
)

// Resolution is the tagged result of resolving one command name. Exactly
// the fields for its kind are set.
type Resolution struct {
	Kind       Kind
	Descriptor cmdregistry.Descriptor // KindInternal
	PluginName string                 // KindPlugin
	Path       string                 // KindPlugin, KindExternal: executable path
}

// Resolver owns the fallback chain: registry, then plugin index, then PATH.
type Resolver struct {
	Registry *cmdregistry.Registry
	Settings *settings.Settings
	UI       *ui.UI
	// Dir is the project root: where the manifest lives, or the working
	// directory when no manifest exists.
	Dir string

	// LookPath and LoadIndex are swappable for tests; nil means
	// exec.LookPath and the on-disk plugin index.
	LookPath  func(name string) (string, error)
	LoadIndex func(root string) (*plugins.Index, error)
}

// Resolve tries the registry, the plugin index (when plugins are enabled),
// and finally a bundler-<name> executable on PATH. External candidates are
// probed on every invocation, never cached.
func (r *Resolver) Resolve(name string) Resolution {
	if d, ok := r.Registry.Lookup(name); ok {
		return Resolution{Kind: KindInternal, Descriptor: d}
	}
	if r.Settings.Plugins {
		load := r.LoadIndex
		if load == nil {
			load = plugins.Load
		}
		idx, err := load(r.Dir)
		if err != nil {
			r.UI.Debugf("plugin index unavailable: %v", err)
		} else if plugin, path, ok := idx.CommandOwner(name); ok {
			return Resolution{Kind: KindPlugin, PluginName: plugin, Path: path}
		}
	}
	look := r.LookPath
	if look == nil {
		look = exec.LookPath
	}
	if path, err := look(ExecPrefix + name); err == nil {
		return Resolution{Kind: KindExternal, Path: path}
	}
	return Resolution{Kind: KindUnresolved}
}

// Run executes a resolution. Internal handlers get parsed options and the
// auto-install guard when eligible; plugin and external programs inherit
// this process's streams, and a nonzero child exit comes back as an
// errkind.ExitStatus for the entrypoint to mirror.
func (r *Resolver) Run(res Resolution, rawArgs []string, name string, tail []string, global cmdregistry.GlobalOptions) error {
	switch res.Kind {
	case KindInternal:
		return r.runInternal(res.Descriptor, rawArgs, tail, global)
	case KindPlugin:
		r.UI.Debugf("running command %s from plugin %s", name, res.PluginName)
		args := append([]string{name}, tail...)
		return errkind.Exit(execx.Run(res.Path, args...).Code)
	case KindExternal:
		r.UI.Debugf("running external command %s", res.Path)
		return errkind.Exit(execx.Run(res.Path, tail...).Code)
	default:
		return errkind.UnknownCommandf("Could not find command %q.", name)
	}
}

func (r *Resolver) runInternal(d cmdregistry.Descriptor, rawArgs, tail []string, global cmdregistry.GlobalOptions) error {
	// the pre-scan in main only sees tokens before the command, so the
	// shared flags ride along in every command's schema as well
	specs := append(cmdregistry.GlobalSpecs(), d.Options...)
	parse := cliopts.Parse
	if d.ForwardArgs {
		parse = cliopts.ParseForward
	}
	vals, rest, err := parse(specs, tail)
	if err != nil {
		return err
	}
	if vals.Bool("no-color") {
		global.NoColor = true
	}
	if vals.Bool("verbose") {
		global.Verbose = true
	}
	if vals.Has("retry") {
		global.Retry = vals.Int("retry")
	}
	r.UI.Configure(global.NoColor, global.Verbose)

	ctx := &cmdregistry.Context{
		RawArgs:  rawArgs,
		Command:  d.Name,
		Args:     rest,
		Options:  vals,
		Global:   global,
		Dir:      r.Dir,
		Settings: r.Settings,
		UI:       r.UI,
		Runtime:  deps.NewRuntime(r.Dir, r.Settings, r.UI),
		Registry: r.Registry,
	}
	if autoinstall.Eligible(d.Name) {
		if err := autoinstall.Ensure(ctx); err != nil {
			return err
		}
	}
	return d.Handler(ctx)
}
