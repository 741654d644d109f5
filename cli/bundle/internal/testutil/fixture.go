// Package testutil provisions throwaway bundle projects for handler tests:
// a temp directory with a Gemfile, a config file fenced off from the
// invoking user's, an installed-gem ledger, and the context plumbing
// handlers expect.
package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
	"github.com/kayger44/rubygems/cli/bundle/internal/cmdregistry"
	"github.com/kayger44/rubygems/cli/bundle/internal/deps"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

// SampleGemfile declares two gems, one version-pinned.
const SampleGemfile = `source "https://rubygems.org"

gem "rack", "~> 3.0"
gem "rake"
`

// Fixture is a temporary project directory wired for handler tests.
type Fixture struct {
	t        *testing.T
	Dir      string
	Settings *settings.Settings
	UI       *ui.UI
	Registry *cmdregistry.Registry
}

// NewFixture builds an isolated project. BUNDLE_* variables from the
// invoking environment are cleared so settings come only from the fixture.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	for _, key := range []string{
		"BUNDLE_GEMFILE", "BUNDLE_PATH", "BUNDLE_AUTO_INSTALL",
		"BUNDLE_PLUGINS", "BUNDLE_RETRY", "BUNDLE_NO_COLOR", "BUNDLE_DEBUG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Setenv("BUNDLE_CONFIG", filepath.Join(dir, ".bundle", "config"))

	st, err := settings.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	u := ui.New(true, false)
	u.SetOutput(io.Discard, io.Discard)
	return &Fixture{
		t:        t,
		Dir:      dir,
		Settings: st,
		UI:       u,
		Registry: cmdregistry.New(),
	}
}

// WriteGemfile writes body as the project Gemfile and returns its path.
func (f *Fixture) WriteGemfile(body string) string {
	f.t.Helper()
	path := filepath.Join(f.Dir, "Gemfile")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		f.t.Fatalf("write Gemfile: %v", err)
	}
	return path
}

// Gemfile returns the current Gemfile contents.
func (f *Fixture) Gemfile() string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.Dir, "Gemfile"))
	if err != nil {
		f.t.Fatalf("read Gemfile: %v", err)
	}
	return string(data)
}

// Lockfile returns the Gemfile.lock contents, "" when absent.
func (f *Fixture) Lockfile() string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.Dir, "Gemfile.lock"))
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		f.t.Fatalf("read Gemfile.lock: %v", err)
	}
	return string(data)
}

// WriteLedger records the given gems as installed under the bundle path.
func (f *Fixture) WriteLedger(gems map[string]string) {
	f.t.Helper()
	doc := struct {
		Gems map[string]deps.Entry `yaml:"gems"`
	}{Gems: map[string]deps.Entry{}}
	for name, version := range gems {
		doc.Gems[name] = deps.Entry{Version: version}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		f.t.Fatalf("marshal ledger: %v", err)
	}
	path := filepath.Join(f.Dir, f.Settings.Path, "installed.yml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.t.Fatalf("write ledger: %v", err)
	}
}

// Ledger returns the installed name -> version map currently on disk.
func (f *Fixture) Ledger() map[string]string {
	f.t.Helper()
	out := map[string]string{}
	data, err := os.ReadFile(filepath.Join(f.Dir, f.Settings.Path, "installed.yml"))
	if os.IsNotExist(err) {
		return out
	}
	if err != nil {
		f.t.Fatalf("read ledger: %v", err)
	}
	var doc struct {
		Gems map[string]deps.Entry `yaml:"gems"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		f.t.Fatalf("parse ledger: %v", err)
	}
	for name, entry := range doc.Gems {
		out[name] = entry.Version
	}
	return out
}

// Context builds an invocation context over the fixture directory. Tests
// that exercise command cascades register the callees on f.Registry first.
func (f *Fixture) Context(command string, args ...string) *cmdregistry.Context {
	return &cmdregistry.Context{
		Command:  command,
		Args:     args,
		Options:  cliopts.Values{},
		Dir:      f.Dir,
		Settings: f.Settings,
		UI:       f.UI,
		Runtime:  deps.NewRuntime(f.Dir, f.Settings, f.UI),
		Registry: f.Registry,
	}
}
