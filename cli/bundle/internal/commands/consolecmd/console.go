// Package consolecmd starts an interactive shell with the bundle loaded.
// The shell defaults to irb and can be overridden with BUNDLE_CONSOLE.
package consolecmd

import (
	"os"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/execx"
)

// Register adds the console command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "console",
		Summary: "Open a console with the bundle pre-loaded",
		Usage:   "console [GROUP]",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Materialize()
	if err != nil {
		return err
	}
	if len(ctx.Args) > 0 {
		ctx.UI.Debugf("loading group %s", ctx.Args[0])
	}
	shell := os.Getenv("BUNDLE_CONSOLE")
	if shell == "" {
		shell = "irb"
	}
	os.Setenv("BUNDLE_GEMFILE", defn.ManifestPath)
	return errkind.Exit(execx.Run(shell).Code)
}
