// Package initcmd writes a starter Gemfile into the working directory. It
// deliberately uses the invocation directory rather than any enclosing
// project root, so a nested project can be initialized inside another.
package initcmd

import (
	"os"
	"path/filepath"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
)

const template = `# frozen_string_literal: true

source "https://rubygems.org"

# gem "rails"
`

// Register adds the init command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "init",
		Summary: "Generate a Gemfile in the current directory",
		Usage:   "init",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	path := filepath.Join(cwd, manifest.DefaultName)
	if _, err := os.Stat(path); err == nil {
		return errkind.InvalidOptionf("Gemfile already exists at %s", path)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return err
	}
	ctx.UI.Confirm("Writing new Gemfile to " + path)
	return nil
}
