// Package execcmd runs an arbitrary program inside the bundle's context:
// the manifest path is exported so the child sees the same project, and the
// child's exit code is mirrored exactly.
package execcmd

import (
	"os"
	"os/exec"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/execx"
)

// Register adds the exec command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "exec",
		Aliases: []string{"ex", "e"},
		Summary: "Run a command in the context of the bundle",
		Usage:   "exec COMMAND [ARG...]",
		Options: []cliopts.Spec{
			{Name: "keep-file-descriptors", Type: cliopts.Bool, Desc: "deprecated, file descriptors are always kept"},
		},
		Handler: handle,
		// the child's argv must arrive untouched, flags included
		ForwardArgs: true,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 {
		return errkind.InvalidOption("exec needs a command to run")
	}
	if ctx.Options.Bool("keep-file-descriptors") {
		ctx.UI.Warn("--keep-file-descriptors is deprecated and has no effect")
	}
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	name, rest := ctx.Args[0], ctx.Args[1:]
	path, err := exec.LookPath(name)
	if err != nil {
		ctx.UI.Error("bundle: command not found: " + name)
		return errkind.Exit(127)
	}
	os.Setenv("BUNDLE_GEMFILE", defn.ManifestPath)
	return errkind.Exit(execx.Run(path, rest...).Code)
}
