// Package removecmd deletes gem declarations from the Gemfile. The handler
// validates its input, hands the edit to the manifest injector, and only
// re-runs install when asked to, so a plain remove touches nothing but the
// Gemfile itself.
package removecmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
)

// Register adds the remove command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "remove",
		Summary: "Remove gems from the Gemfile",
		Usage:   "remove GEM [GEM...] [--install]",
		Options: []cliopts.Spec{
			{Name: "install", Type: cliopts.Bool, Desc: "run `bundle install` after removing the gems"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		return errkind.InvalidOption("Please specify gems to remove.")
	}
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	if err := manifest.NewInjector(defn.ManifestPath).Remove(ctx.Args); err != nil {
		return err
	}
	for _, name := range ctx.Args {
		ctx.UI.Confirm(fmt.Sprintf("%s was removed.", name))
	}
	if ctx.Options.Bool("install") {
		ctx.ResetRuntime()
		return ctx.RunCommand("install")
	}
	return nil
}
