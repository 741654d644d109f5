// Package opencmd launches the user's editor on an installed gem's source
// directory.
package opencmd

import (
	"os"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/execx"
)

// Register adds the open command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "open",
		Summary: "Open an installed gem in the editor",
		Usage:   "open GEM",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		return errkind.InvalidOption("Please specify the gem to open.")
	}
	defn, err := ctx.Runtime.Materialize()
	if err != nil {
		return err
	}
	d, ok := defn.Lookup(ctx.Args[0])
	if !ok {
		return errkind.InvalidOptionf("Could not find gem '%s'.", ctx.Args[0])
	}
	editor := firstSet("BUNDLER_EDITOR", "VISUAL", "EDITOR")
	if editor == "" {
		return errkind.InvalidOption("To open a bundled gem, set $EDITOR or $BUNDLER_EDITOR")
	}
	path := defn.GemDir(ctx.Settings.Path, d)
	ctx.UI.Debugf("opening %s with %s", path, editor)
	return errkind.Exit(execx.Run(editor, path).Code)
}

func firstSet(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
