// Package showcmd prints where installed gems live on disk. It needs a
// satisfied bundle, so it runs behind the auto-install guard.
package showcmd

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Register adds the show command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "show",
		Summary: "Show the source location of a gem in the bundle",
		Usage:   "show [GEM] [--paths]",
		Options: []cliopts.Spec{
			{Name: "paths", Type: cliopts.Bool, Desc: "list the paths of all gems in the bundle"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Materialize()
	if err != nil {
		return err
	}
	if ctx.Options.Bool("paths") {
		for _, d := range defn.Sorted() {
			ctx.UI.Confirm(defn.GemDir(ctx.Settings.Path, d))
		}
		return nil
	}
	if len(ctx.Args) == 0 {
		ctx.UI.Confirm("Gems included by the bundle:")
		for _, d := range defn.Sorted() {
			ctx.UI.Confirmf("  * %s (%s)", d.Name, d.Version)
		}
		return nil
	}
	name := ctx.Args[0]
	d, ok := defn.Lookup(name)
	if !ok {
		return errkind.InvalidOptionf("Could not find gem '%s'.", name)
	}
	ctx.UI.Confirm(defn.GemDir(ctx.Settings.Path, d))
	return nil
}
