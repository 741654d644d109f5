// Package plugins keeps the on-disk index of installed plugins: which
// executable implements each plugin and which command names it owns. The
// dispatcher consults the index between the built-in registry and the PATH
// fallback, so a plugin can claim a command name before any external
// bundler-<name> executable sees it.
package plugins

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Index is the plugin registry persisted under the project root at
// .bundle/plugin/index.yml.
type Index struct {
	// Plugins maps a plugin name to its executable path.
	Plugins map[string]string `yaml:"plugins"`
	// Commands maps a claimed command name to the owning plugin.
	Commands map[string]string `yaml:"commands"`

	path string
}

// IndexPath returns the index location under root.
func IndexPath(root string) string {
	return filepath.Join(root, ".bundle", "plugin", "index.yml")
}

// Load reads the index under root. A missing file is an empty index.
func Load(root string) (*Index, error) {
	idx := &Index{
		Plugins:  map[string]string{},
		Commands: map[string]string{},
		path:     IndexPath(root),
	}
	data, err := os.ReadFile(idx.path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("parse %s: %w", idx.path, err)
	}
	if idx.Plugins == nil {
		idx.Plugins = map[string]string{}
	}
	if idx.Commands == nil {
		idx.Commands = map[string]string{}
	}
	return idx, nil
}

// CommandOwner resolves cmd to the owning plugin and its executable.
func (ix *Index) CommandOwner(cmd string) (plugin, path string, ok bool) {
	plugin, ok = ix.Commands[cmd]
	if !ok {
		return "", "", false
	}
	path, ok = ix.Plugins[plugin]
	if !ok {
		return "", "", false
	}
	return plugin, path, true
}

// Install records a plugin and the commands it claims, then persists the
// index. Claiming a command another plugin already owns fails the whole
// install; re-claiming your own is a no-op.
func (ix *Index) Install(name, exePath string, commands []string) error {
	for _, c := range commands {
		if owner, taken := ix.Commands[c]; taken && owner != name {
			return fmt.Errorf("command `%s` is already registered by the plugin %s", c, owner)
		}
	}
	ix.Plugins[name] = exePath
	for _, c := range commands {
		ix.Commands[c] = name
	}
	return ix.save()
}

// Uninstall removes a plugin and every command it owns, then persists.
func (ix *Index) Uninstall(name string) error {
	if _, ok := ix.Plugins[name]; !ok {
		return fmt.Errorf("plugin %s is not installed", name)
	}
	delete(ix.Plugins, name)
	for cmd, owner := range ix.Commands {
		if owner == name {
			delete(ix.Commands, cmd)
		}
	}
	return ix.save()
}

// Names returns the installed plugin names, sorted.
func (ix *Index) Names() []string {
	out := make([]string, 0, len(ix.Plugins))
	for name := range ix.Plugins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// CommandsOf returns the sorted command names owned by plugin name.
func (ix *Index) CommandsOf(name string) []string {
	var out []string
	for cmd, owner := range ix.Commands {
		if owner == name {
			out = append(out, cmd)
		}
	}
	sort.Strings(out)
	return out
}

func (ix *Index) save() error {
	if err := os.MkdirAll(filepath.Dir(ix.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(ix)
	if err != nil {
		return err
	}
	return os.WriteFile(ix.path, data, 0o644)
}
