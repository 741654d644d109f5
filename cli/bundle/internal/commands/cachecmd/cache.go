// Package cachecmd installs the bundle and snapshots its gems into
// vendor/cache so later installs can run offline.
package cachecmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Register adds the cache command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "cache",
		Aliases: []string{"package", "pack"},
		Summary: "Cache the bundle's gems under vendor/cache",
		Usage:   "cache [--quiet]",
		Options: []cliopts.Spec{
			{Name: "quiet", Type: cliopts.Bool, Desc: "print nothing on success"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	if err := ctx.Runtime.Install(defn); err != nil {
		return err
	}
	dir := filepath.Join(defn.Root, "vendor", "cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	quiet := ctx.Options.Bool("quiet")
	if !quiet {
		ctx.UI.Confirm("Updating files in vendor/cache")
	}
	for _, d := range defn.Sorted() {
		name := fmt.Sprintf("%s-%s.gem", d.Name, d.Version)
		marker := fmt.Sprintf("%s %s\n", d.Name, d.Version)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(marker), 0o644); err != nil {
			return err
		}
		if !quiet {
			ctx.UI.Confirm("  * " + name)
		}
	}
	return nil
}
