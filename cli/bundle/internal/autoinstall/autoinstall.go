// Package autoinstall holds the pre-flight repair for commands that need a
// satisfied bundle. When the auto_install setting is on and materializing
// the dependency set reports a missing gem, the guard rebuilds the runtime,
// runs install once, and rebuilds again so the target handler sees fresh
// state. It runs at most once per invocation and only the missing-dependency
// classification triggers it.
package autoinstall

import (
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Commands guarded by the repair. install itself is absent so the repair
// cannot recurse, and mutating commands like remove stay out so a broken
// bundle never blocks editing the manifest.
var allowList = map[string]struct{}{
	"show":     {},
	"binstubs": {},
	"outdated": {},
	"exec":     {},
	"open":     {},
	"console":  {},
	"licenses": {},
	"clean":    {},
}

// Eligible reports whether the command's handler runs behind the guard.
// Name must already be canonical; aliases resolve before dispatch.
func Eligible(name string) bool {
	_, ok := allowList[name]
	return ok
}

// Ensure runs the repair once before an eligible handler. Failures other
// than a missing dependency propagate unchanged, and a failed install
// aborts the invocation rather than retrying.
func Ensure(ctx *cmdregistry.Context) error {
	if !ctx.Settings.AutoInstall {
		return nil
	}
	_, err := ctx.Runtime.Materialize()
	if err == nil {
		return nil
	}
	if !errkind.IsMissingDependency(err) {
		return err
	}
	ctx.UI.Info("Automatically installing missing gems.")
	ctx.ResetRuntime()
	if err := ctx.RunCommand("install"); err != nil {
		return err
	}
	ctx.ResetRuntime()
	return nil
}
