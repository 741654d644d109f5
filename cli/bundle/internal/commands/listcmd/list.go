// Package listcmd prints the gems the Gemfile declares.
package listcmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Register adds the list command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "list",
		Aliases: []string{"ls"},
		Summary: "List the gems in the bundle",
		Usage:   "list [--name-only]",
		Options: []cliopts.Spec{
			{Name: "name-only", Type: cliopts.Bool, Desc: "print only the gem names"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	if len(defn.Deps) == 0 {
		ctx.UI.Confirm("There are no gems in the Gemfile!")
		return nil
	}
	if ctx.Options.Bool("name-only") {
		for _, d := range defn.Sorted() {
			ctx.UI.Confirm(d.Name)
		}
		return nil
	}
	ctx.UI.Confirm("Gems included by the bundle:")
	for _, d := range defn.Sorted() {
		version := d.Version
		if !d.Installed {
			version = "missing"
		}
		ctx.UI.Confirm(fmt.Sprintf("  * %s (%s)", d.Name, version))
	}
	return nil
}
