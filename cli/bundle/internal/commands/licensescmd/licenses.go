// Package licensescmd prints the license recorded for each installed gem.
package licensescmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Register adds the licenses command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "licenses",
		Summary: "Print the license of every gem in the bundle",
		Usage:   "licenses",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Materialize()
	if err != nil {
		return err
	}
	for _, d := range defn.Sorted() {
		license := d.License
		if license == "" {
			license = "Unknown"
		}
		ctx.UI.Confirm(fmt.Sprintf("%s: %s", d.Name, license))
	}
	return nil
}
