// Package configcmd reads and writes the persisted tool configuration.
//
// Both the subcommand form (config get NAME, config set NAME VALUE) and the
// bare legacy form (config NAME, config NAME VALUE) are accepted.
package configcmd

import (
	"os"
	"sort"
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

func Register(r *cmdregistry.Registry) {
	r.Register(cmdregistry.Descriptor{
		Name:    "config",
		Summary: "Retrieve or set a configuration value",
		Options: []cliopts.Spec{
			{Name: "parseable", Type: cliopts.Bool, Desc: "Print each setting as name=value"},
		},
		Handler: handle,
	})
}

func handle(ctx *cmdregistry.Context) error {
	parseable := ctx.Options.Bool("parseable")
	args := ctx.Args
	if len(args) == 0 {
		return list(ctx.UI, parseable)
	}
	switch args[0] {
	case "list":
		return list(ctx.UI, parseable)
	case "get":
		if len(args) != 2 {
			return errkind.InvalidOption("`bundle config get` requires the name of a setting.")
		}
		return get(ctx.UI, args[1], parseable)
	case "set":
		if len(args) < 3 {
			return errkind.InvalidOption("`bundle config set` requires a name and a value.")
		}
		return set(ctx.UI, args[1], strings.Join(args[2:], " "))
	case "unset":
		if len(args) != 2 {
			return errkind.InvalidOption("`bundle config unset` requires the name of a setting.")
		}
		return settings.Unset(args[1])
	}
	if len(args) == 1 {
		return get(ctx.UI, args[0], parseable)
	}
	return set(ctx.UI, args[0], strings.Join(args[1:], " "))
}

func list(u *ui.UI, parseable bool) error {
	raw, err := settings.ReadFile()
	if err != nil {
		return err
	}
	keys := make(map[string]bool, len(raw))
	for k := range raw {
		keys[k] = true
	}
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		// BUNDLE_CONFIG names the file itself, it is not a setting
		if strings.HasPrefix(k, "BUNDLE_") && k != "BUNDLE_CONFIG" {
			keys[k] = true
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	if parseable {
		for _, key := range names {
			u.Confirmf("%s=%s", display(key), effective(key, raw))
		}
		return nil
	}
	u.Confirm("Settings are listed in order of priority. The top value will be used.")
	for _, key := range names {
		u.Confirm("")
		printSources(u, key, raw)
	}
	return nil
}

func get(u *ui.UI, name string, parseable bool) error {
	raw, err := settings.ReadFile()
	if err != nil {
		return err
	}
	key := settings.Normalize(name)
	_, envSet := os.LookupEnv(key)
	_, fileSet := raw[key]
	if !envSet && !fileSet {
		u.Confirmf("You have not configured a value for `%s`", display(key))
		return nil
	}
	if parseable {
		u.Confirmf("%s=%s", display(key), effective(key, raw))
		return nil
	}
	u.Confirmf("Settings for `%s` in order of priority. The top value will be used", display(key))
	printSources(u, key, raw)
	return nil
}

func set(u *ui.UI, name, value string) error {
	key := settings.Normalize(name)
	if _, ok := os.LookupEnv(key); ok {
		u.Warn("The " + key + " environment variable is set and will take precedence over this value.")
	}
	return settings.Set(key, value)
}

// printSources lists every layer that defines key, highest priority first.
func printSources(u *ui.UI, key string, raw map[string]string) {
	u.Confirm(display(key))
	if val, ok := os.LookupEnv(key); ok {
		u.Confirmf("Set via %s: %q", key, val)
	}
	if val, ok := raw[key]; ok {
		u.Confirmf("Set for the current user (%s): %q", settings.File(), val)
	}
}

func effective(key string, raw map[string]string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return raw[key]
}

func display(key string) string {
	return strings.ToLower(strings.TrimPrefix(key, "BUNDLE_"))
}
