// Package addcmd writes new gem declarations into the Gemfile and, unless
// told otherwise, re-runs install so the recorded state matches.
package addcmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
)

// Register adds the add command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "add",
		Summary: "Add gems to the Gemfile and install them",
		Usage:   "add GEM [GEM...] [--version REQ] [--group NAME] [--source URL] [--skip-install]",
		Options: []cliopts.Spec{
			{Name: "version", Type: cliopts.String, Aliases: []string{"v"}, Desc: "version requirement for the new gems"},
			{Name: "group", Type: cliopts.String, Aliases: []string{"g"}, Desc: "group to declare the gems in"},
			{Name: "source", Type: cliopts.String, Aliases: []string{"s"}, Desc: "source URL for the new gems"},
			{Name: "skip-install", Type: cliopts.Bool, Desc: "edit the Gemfile without installing"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		return errkind.InvalidOption("Please specify gems to add.")
	}
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	gems := make([]manifest.Gem, 0, len(ctx.Args))
	for _, name := range ctx.Args {
		g := manifest.Gem{
			Name:   name,
			Group:  ctx.Options.String("group"),
			Source: ctx.Options.String("source"),
		}
		if v := ctx.Options.String("version"); v != "" {
			g.Requirements = []string{v}
		}
		gems = append(gems, g)
	}
	if err := manifest.NewInjector(defn.ManifestPath).Add(gems); err != nil {
		return err
	}
	for _, g := range gems {
		ctx.UI.Confirm(fmt.Sprintf("Added %s to the Gemfile.", g.Name))
	}
	if ctx.Options.Bool("skip-install") {
		return nil
	}
	ctx.ResetRuntime()
	return ctx.RunCommand("install")
}
