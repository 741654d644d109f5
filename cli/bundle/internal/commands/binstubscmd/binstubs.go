// Package binstubscmd writes executable stubs that run a gem's commands
// through the bundle.
package binstubscmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Register adds the binstubs command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "binstubs",
		Summary: "Install binstubs for gems in the bundle",
		Usage:   "binstubs GEM [GEM...] [--path DIR] [--all] [--force]",
		Options: []cliopts.Spec{
			{Name: "path", Type: cliopts.String, LazyDefault: "bin", Desc: "directory to write stubs into"},
			{Name: "all", Type: cliopts.Bool, Desc: "write stubs for every gem in the bundle"},
			{Name: "force", Type: cliopts.Bool, Desc: "overwrite existing stubs"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	if len(ctx.Args) == 0 && !ctx.Options.Bool("all") {
		return errkind.InvalidOption("`bundle binstubs` needs at least one gem to run.")
	}
	defn, err := ctx.Runtime.Materialize()
	if err != nil {
		return err
	}

	var targets []deps.Dep
	if ctx.Options.Bool("all") {
		targets = defn.Sorted()
	} else {
		for _, name := range ctx.Args {
			d, ok := defn.Lookup(name)
			if !ok {
				return errkind.InvalidOptionf("Could not find gem '%s'.", name)
			}
			targets = append(targets, d)
		}
	}

	dir := ctx.Options.String("path")
	if dir == "" {
		dir = "bin"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(defn.Root, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	skipped := false
	for _, d := range targets {
		dest := filepath.Join(dir, d.Name)
		if _, err := os.Stat(dest); err == nil && !ctx.Options.Bool("force") {
			ctx.UI.Confirm(fmt.Sprintf("Skipped %s since it already exists.", d.Name))
			skipped = true
			continue
		}
		if err := os.WriteFile(dest, []byte(renderStub(d.Name)), 0o755); err != nil {
			return err
		}
	}
	if skipped {
		ctx.UI.Confirm("If you want to overwrite skipped stubs, use --force.")
	}
	return nil
}

func renderStub(name string) string {
	return fmt.Sprintf(`#!/usr/bin/env ruby
# frozen_string_literal: true

#
# This file was generated by bundle binstubs.
#
# The application '%s' is installed as part of a gem, and this file
# is here to facilitate running it.
#

ENV["BUNDLE_GEMFILE"] ||= File.expand_path("../Gemfile", __dir__)

require "bundler/setup"
load Gem.bin_path(%q, %q)
`, name, name, name)
}
