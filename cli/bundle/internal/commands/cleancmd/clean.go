// Package cleancmd removes ledger entries for gems the Gemfile no longer
// declares.
package cleancmd

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Register adds the clean command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "clean",
		Summary: "Remove installed gems the Gemfile no longer declares",
		Usage:   "clean [--dry-run]",
		Options: []cliopts.Spec{
			{Name: "dry-run", Type: cliopts.Bool, Desc: "list removals without performing them"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	dryRun := ctx.Options.Bool("dry-run")
	removed, err := ctx.Runtime.Clean(defn, dryRun)
	if err != nil {
		return err
	}
	for _, label := range removed {
		if dryRun {
			ctx.UI.Confirm("Would have removed " + label)
		} else {
			ctx.UI.Confirm("Removing " + label)
		}
	}
	return nil
}
