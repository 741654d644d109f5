// Package updatecmd re-records gems at the version their requirement pins.
// Updating everything requires the explicit --all flag so a bare update
// cannot silently rewrite the whole ledger.
package updatecmd

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Register adds the update command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "update",
		Summary: "Update installed gems to the versions their requirements pin",
		Usage:   "update [GEM...] [--all] [--quiet]",
		Options: []cliopts.Spec{
			{Name: "all", Type: cliopts.Bool, Desc: "update every gem in the bundle"},
			{Name: "quiet", Type: cliopts.Bool, Desc: "print nothing on success"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 && !ctx.Options.Bool("all") {
		return errkind.InvalidOption("To update everything, pass the `--all` flag.")
	}
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	for _, name := range ctx.Args {
		if _, ok := defn.Lookup(name); !ok {
			return errkind.InvalidOptionf("Could not find gem '%s'.", name)
		}
	}
	if err := ctx.Runtime.Update(defn, ctx.Args); err != nil {
		return err
	}
	if !ctx.Options.Bool("quiet") {
		ctx.UI.Confirm("Bundle updated!")
	}
	return nil
}
