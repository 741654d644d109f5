// Package outdatedcmd compares installed versions against what each gem's
// requirement currently pins. A clean bundle exits 0; an outdated one lists
// the drift and exits 1 so scripts can branch on it.
package outdatedcmd

import (
	"fmt"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Register adds the outdated command.
func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "outdated",
		Summary: "List gems whose installed version drifted from the requirement",
		Usage:   "outdated [GEM...] [--parseable]",
		Options: []cliopts.Spec{
			{Name: "parseable", Type: cliopts.Bool, Desc: "one gem per line, no decoration"},
		},
		Handler: handle,
	})
}

type row struct {
	name, newest, installed, requested string
}

func handle(ctx *cmdregistry.Context) error {
	defn, err := ctx.Runtime.Load()
	if err != nil {
		return err
	}
	only := make(map[string]bool, len(ctx.Args))
	for _, n := range ctx.Args {
		only[n] = true
	}
	var rows []row
	for _, d := range defn.Sorted() {
		if len(only) > 0 && !only[d.Name] {
			continue
		}
		if !d.Installed || d.Requirement == "" {
			continue
		}
		newest := deps.Pinned(d.Requirement)
		if d.Version != newest {
			rows = append(rows, row{d.Name, newest, d.Version, d.Requirement})
		}
	}
	if len(rows) == 0 {
		ctx.UI.Confirm("Bundle up to date!")
		return nil
	}
	if ctx.Options.Bool("parseable") {
		for _, r := range rows {
			ctx.UI.Confirm(fmt.Sprintf("%s (newest %s, installed %s)", r.name, r.newest, r.installed))
		}
		return errkind.Exit(1)
	}
	ctx.UI.Confirm("Outdated gems included in the bundle:")
	for _, r := range rows {
		ctx.UI.Confirm(fmt.Sprintf("  * %s (newest %s, installed %s, requested %s)", r.name, r.newest, r.installed, r.requested))
	}
	return errkind.Exit(1)
}
