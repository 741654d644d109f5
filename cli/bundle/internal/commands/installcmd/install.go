// Package installcmd records every declared gem as installed and refreshes
// the lockfile. It is also the target of the auto-install repair and of the
// --install cascades in add and remove, so it must stay safe to invoke
// in-process with no arguments.
package installcmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Register adds the install command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "install",
		Aliases: []string{"i"},
		Summary: "Install the gems the Gemfile declares",
		Usage:   "install [--jobs N] [--local] [--quiet]",
		Options: []cliopts.Spec{
			{Name: "jobs", Type: cliopts.Int, Default: 1, Aliases: []string{"j"}, Desc: "resolve with N parallel workers"},
			{Name: "local", Type: cliopts.Bool, Desc: "use only gems already available locally"},
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
	ctx.UI.Debugf("resolving with %d jobs", ctx.Options.Int("jobs"))
	if ctx.Options.Bool("local") {
		ctx.UI.Debugf("skipping remote fetch, using local gems only")
	} else if defn.Source != "" {
		ctx.UI.Debugf("fetching gem metadata from %s", defn.Source)
	}
	if ctx.Global.Retry > 0 {
		ctx.UI.Debugf("network retry budget: %d", ctx.Global.Retry)
	}

	if err := ctx.Runtime.Install(defn); err != nil {
		return err
	}
	if !ctx.Options.Bool("quiet") {
		n := len(defn.Deps)
		word := "dependencies"
		if n == 1 {
			word = "dependency"
		}
		ctx.UI.Confirm(fmt.Sprintf("Bundle complete! %d Gemfile %s, %d gems now installed.", n, word, n))
	}
	return nil
}
