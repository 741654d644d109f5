// Package plugincmd manages the plugin index: which executables implement
// plugins and which command names they own.
package plugincmd

import (
	"os"
	"path/filepath"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/plugins"
)

func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "plugin",
		Summary: "Manage the plugins bundle can run",
		Usage:   "plugin install NAME --path EXECUTABLE [--command NAME]... | uninstall NAME | list",
		Options: []cliopts.Spec{
			{Name: "path", Type: cliopts.String, Desc: "Executable implementing the plugin"},
			{Name: "command", Type: cliopts.StringList, Desc: "Command name the plugin claims; repeatable, defaults to the plugin name"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		return errkind.InvalidOption("`bundle plugin` requires a subcommand: install, uninstall or list.")
	}
	sub, rest := ctx.Args[0], ctx.Args[1:]
	switch sub {
	case "install":
		return install(ctx, rest)
	case "uninstall":
		return uninstall(ctx, rest)
	case "list":
		return list(ctx)
	}
	return errkind.InvalidOptionf("unknown plugin subcommand %q", sub)
}

func install(ctx *cmdregistry.Context, args []string) error {
	if len(args) != 1 {
		return errkind.InvalidOption("`bundle plugin install` requires the name of a plugin.")
	}
	name := args[0]
	exe := ctx.Options.String("path")
	if exe == "" {
		return errkind.InvalidOption("`bundle plugin install` requires --path pointing at the plugin executable.")
	}
	if !filepath.IsAbs(exe) {
		exe = filepath.Join(ctx.Dir, exe)
	}
	if _, err := os.Stat(exe); err != nil {
		return errkind.InvalidOptionf("no plugin executable at %s", exe)
	}
	commands := ctx.Options.StringList("command")
	if len(commands) == 0 {
		commands = []string{name}
	}
	idx, err := plugins.Load(ctx.Dir)
	if err != nil {
		return err
	}
	if err := idx.Install(name, exe, commands); err != nil {
		return err
	}
	ctx.UI.Confirmf("Installed plugin %s", name)
	return nil
}

func uninstall(ctx *cmdregistry.Context, args []string) error {
	if len(args) != 1 {
		return errkind.InvalidOption("`bundle plugin uninstall` requires the name of a plugin.")
	}
	idx, err := plugins.Load(ctx.Dir)
	if err != nil {
		return err
	}
	if err := idx.Uninstall(args[0]); err != nil {
		return err
	}
	ctx.UI.Confirmf("Uninstalled plugin %s", args[0])
	return nil
}

func list(ctx *cmdregistry.Context) error {
	idx, err := plugins.Load(ctx.Dir)
	if err != nil {
		return err
	}
	names := idx.Names()
	if len(names) == 0 {
		ctx.UI.Confirm("No plugins installed")
		return nil
	}
	for i, name := range names {
		if i > 0 {
			ctx.UI.Confirm("")
		}
		ctx.UI.Confirm(name)
		ctx.UI.Confirm("-----")
		for _, cmd := range idx.CommandsOf(name) {
			ctx.UI.Confirm("  " + cmd)
		}
	}
	return nil
}
