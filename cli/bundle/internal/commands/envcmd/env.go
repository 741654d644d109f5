// Package envcmd prints a diagnostic report of the tool's version,
// configuration, and the BUNDLE_* environment, for pasting into bug reports.
package envcmd

import (
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/commands/versioncmd"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
)

func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "env",
		Summary: "Print environment information useful for debugging",
		Hidden:  true,
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	u := ctx.UI
	u.Confirm("## Bundle")
	u.Confirm("")
	u.Confirmf("Bundle version   %s", versioncmd.Version)
	u.Confirmf("Platform         %s/%s", runtime.GOOS, runtime.GOARCH)
	u.Confirmf("Config file      %s", settings.File())
	if path, err := manifest.Locate(ctx.Dir, ctx.Settings.Gemfile); err == nil {
		u.Confirmf("Gemfile          %s", path)
	} else {
		u.Confirm("Gemfile          (none found)")
	}
	u.Confirm("")
	u.Confirm("## Environment")
	u.Confirm("")
	vars := relevantEnv()
	if len(vars) == 0 {
		u.Confirm("(no BUNDLE_* variables set)")
		return nil
	}
	for _, kv := range vars {
		u.Confirm(kv)
	}
	return nil
}

func relevantEnv() []string {
	var out []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "BUNDLE_") || key == "RUBYGEMS_GEMDEPS" {
			out = append(out, kv)
		}
	}
	sort.Strings(out)
	return out
}
