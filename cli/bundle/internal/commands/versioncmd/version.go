// Package versioncmd prints the release version of the tool.
package versioncmd

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
)

// Version is the release version reported by `bundle version` and
// included in the env report.
const Version = "0.9.3"

func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "version",
		Aliases: []string{"-v", "--version"},
		Summary: "Prints the version of the running tool",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	ctx.UI.Confirm("Bundle version " + Version)
	return nil
}
