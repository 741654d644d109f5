package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kayger44/rubygems/cli/bundle/internal/argutil"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/addcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/binstubscmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/cachecmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/checkcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/cleancmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/configcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/consolecmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/envcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/execcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/helpcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/initcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/installcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/licensescmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/listcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/opencmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/outdatedcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/plugincmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/removecmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/showcmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/updatecmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/versioncmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/dispatch"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

func main() {
	global, rest, err := scanGlobal(os.Args[1:])
	if err != nil {
		die(err.Error())
	}
	st, err := settings.Load()
	if err != nil {
		die(err.Error())
	}
	if st.NoColor {
		global.NoColor = true
	}
	if global.Retry < 0 {
		global.Retry = st.Retry
	}
	u := ui.New(global.NoColor, global.Verbose)
	if os.Getenv("RUBYGEMS_GEMDEPS") != "" {
		u.Warn("The RUBYGEMS_GEMDEPS environment variable is set. This enables RubyGems' experimental Gemfile mode, which may conflict with Bundler and cause unexpected errors. To remove this warning, unset RUBYGEMS_GEMDEPS.")
	}
	if st.Gemfile != "" {
		u.Debugf("using gemfile %s", st.Gemfile)
	}

	registry := buildRegistry()
	if len(rest) == 0 {
		rest = []string{"help"}
	}
	if argutil.HasHelpFlag(rest) {
		if len(rest) == 1 {
			rest = []string{"help"}
		} else if rest, err = argutil.ReformatHelp(rest, registry.Known()); err != nil {
			fail(u, err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		die(err.Error())
	}
	// commands run against the project root when a manifest exists, the
	// working directory otherwise (init, help, version)
	root := cwd
	if path, err := manifest.Locate(cwd, st.Gemfile); err == nil {
		root = filepath.Dir(path)
	}

	resolver := &dispatch.Resolver{
		Registry: registry,
		Settings: st,
		UI:       u,
		Dir:      root,
	}
	name, tail := rest[0], rest[1:]
	if err := resolver.Run(resolver.Resolve(name), rest, name, tail, global); err != nil {
		fail(u, err)
	}
}

// scanGlobal consumes the shared flags appearing before the command token.
// The same flags are merged into every command's schema at dispatch time, so
// `bundle --verbose install` and `bundle install --verbose` behave alike.
// Retry comes back -1 when the flag is absent, letting settings fill it in.
func scanGlobal(args []string) (cmdregistry.GlobalOptions, []string, error) {
	global := cmdregistry.GlobalOptions{Retry: -1}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--no-color":
			global.NoColor = true
		case "--verbose", "-V":
			global.Verbose = true
		case "--retry", "-r":
			if i+1 >= len(args) {
				return global, nil, errkind.InvalidOption("option --retry requires a value")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				return global, nil, errkind.InvalidOptionf("option --retry expects a number, got %q", args[i+1])
			}
			global.Retry = n
			i++
		default:
			return global, args[i:], nil
		}
	}
	return global, nil, nil
}

func buildRegistry() *cmdregistry.Registry {
	r := cmdregistry.New()
	for _, register := range []func(*cmdregistry.Registry){
		addcmd.Register,
		binstubscmd.Register,
		cachecmd.Register,
		checkcmd.Register,
		cleancmd.Register,
		configcmd.Register,
		consolecmd.Register,
		envcmd.Register,
		execcmd.Register,
		helpcmd.Register,
		initcmd.Register,
		installcmd.Register,
		licensescmd.Register,
		listcmd.Register,
		opencmd.Register,
		outdatedcmd.Register,
		plugincmd.Register,
		removecmd.Register,
		showcmd.Register,
		updatecmd.Register,
		versioncmd.Register,
	} {
		register(r)
	}
	return r
}

// fail reports err the way the failing layer expects: child processes have
// already written their own diagnostics, so an ExitStatus propagates
// silently; everything else is printed before exiting.
func fail(u *ui.UI, err error) {
	var status *errkind.ExitStatus
	if errors.As(err, &status) {
		os.Exit(status.Code)
	}
	u.Error(err.Error())
	os.Exit(errkind.ExitCode(err))
}

func die(msg string) { fmt.Fprintln(os.Stderr, msg); os.Exit(1) }
