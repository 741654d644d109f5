// Package helpcmd renders the command listing and per-command help pages
// from the registry's own descriptors, so help never drifts from what is
// actually registered.
package helpcmd

import (
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "help",
		Summary: "Describe available commands or one specific command",
		Usage:   "help [COMMAND]",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		listing(ctx)
		return nil
	}
	d, ok := ctx.Registry.Lookup(ctx.Args[0])
	if !ok {
		return errkind.UnknownCommandf("Could not find command %q.", ctx.Args[0])
	}
	page(ctx, d)
	return nil
}

func listing(ctx *cmdregistry.Context) {
	u := ctx.UI
	u.Confirm("Bundle commands:")
	u.Confirm("")
	names := ctx.Registry.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}
	for _, name := range names {
		d, _ := ctx.Registry.Lookup(name)
		u.Confirmf("  %-*s  %s", width, name, d.Summary)
	}
	u.Confirm("")
	u.Confirm("Global options:")
	u.Confirm("")
	writeOptions(ctx, cmdregistry.GlobalSpecs())
	u.Confirm("")
	u.Confirm("Run `bundle help COMMAND` for more on a specific command.")
}

func page(ctx *cmdregistry.Context, d cmdregistry.Descriptor) {
	u := ctx.UI
	usage := d.Usage
	if usage == "" {
		usage = d.Name
	}
	u.Confirm("Usage:")
	u.Confirm("  bundle " + usage)
	if d.Summary != "" {
		u.Confirm("")
		u.Confirm(d.Summary)
	}
	if len(d.Aliases) > 0 {
		u.Confirm("")
		u.Confirm("Aliases: " + strings.Join(d.Aliases, ", "))
	}
	if len(d.Options) > 0 {
		u.Confirm("")
		u.Confirm("Options:")
		writeOptions(ctx, d.Options)
	}
}

func writeOptions(ctx *cmdregistry.Context, specs []cliopts.Spec) {
	usages := make([]string, len(specs))
	width := 0
	for i, s := range specs {
		usages[i] = flagUsage(s)
		if len(usages[i]) > width {
			width = len(usages[i])
		}
	}
	for i, s := range specs {
		ctx.UI.Confirmf("  %-*s  %s", width, usages[i], s.Desc)
	}
}

func flagUsage(s cliopts.Spec) string {
	parts := make([]string, 0, 1+len(s.Aliases))
	parts = append(parts, "--"+s.Name)
	for _, a := range s.Aliases {
		parts = append(parts, "-"+a)
	}
	usage := strings.Join(parts, ", ")
	if s.Type != cliopts.Bool {
		usage += " VALUE"
	}
	return usage
}
