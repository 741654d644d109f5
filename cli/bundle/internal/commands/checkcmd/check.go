// Package checkcmd reports whether the Gemfile's declarations are satisfied
// by the installed-gem ledger, without installing anything.
package checkcmd

import (
	"fmt"
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Register adds the check command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "check",
		Aliases: []string{"c"},
		Summary: "Verify that the Gemfile's dependencies are installed",
		Usage:   "check",
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	var missing []deps.Dep
	for _, d := range defn.Deps {
		if !d.Installed {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		ctx.UI.Confirm("The Gemfile's dependencies are satisfied")
		return nil
	}
	var b strings.Builder
	b.WriteString("The following gems are missing\n")
	for _, d := range missing {
		fmt.Fprintf(&b, " * %s\n", d.Label())
	}
	b.WriteString("Install missing gems with `bundle install`")
	return errkind.New(errkind.KindMissingDependency, b.String())
}
