// Package deps materializes the project's dependency state: the manifest
// declarations joined with the installed-gem ledger kept under the bundle
// path. A Runtime memoizes what it loads; rebuilding state after an edit or
// an install means constructing a fresh Runtime, never mutating a shared
// one mid-flight.
package deps

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
	"github.com/kayger44/rubygems/cli/bundle/internal/manifest"
	"github.com/kayger44/rubygems/cli/bundle/internal/settings"
	"github.com/kayger44/rubygems/cli/bundle/internal/ui"
)

// Runtime binds a working directory to the settings and UI needed to load
// dependency state.
type Runtime struct {
	Dir      string
	Settings *settings.Settings
	UI       *ui.UI

	defn *Definition
}

// Dep is one declared dependency joined with its installed state.
type Dep struct {
	Name string
	// Requirement is the joined requirement list, "" when unconstrained.
	Requirement string
	Installed   bool
	// Version is the recorded version when installed.
	Version string
	License string
}

// Label renders the dep the way user-facing listings name it.
func (d Dep) Label() string {
	if d.Requirement == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s)", d.Name, d.Requirement)
}

// Definition is the loaded view of the manifest plus the ledger.
type Definition struct {
	ManifestPath string
	Root         string
	Source       string
	Deps         []Dep
}

// Lookup returns the dep declared as name.
func (defn *Definition) Lookup(name string) (Dep, bool) {
	for _, d := range defn.Deps {
		if d.Name == name {
			return d, true
		}
	}
	return Dep{}, false
}

// Sorted returns the deps ordered by name.
func (defn *Definition) Sorted() []Dep {
	out := make([]Dep, len(defn.Deps))
	copy(out, defn.Deps)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GemDir returns the install directory recorded for dep under the bundle
// path.
func (defn *Definition) GemDir(bundlePath string, dep Dep) string {
	return filepath.Join(defn.Root, bundlePath, "gems", dep.Name+"-"+dep.Version)
}

// NewRuntime returns a fresh runtime with nothing memoized.
func NewRuntime(dir string, st *settings.Settings, u *ui.UI) *Runtime {
	return &Runtime{Dir: dir, Settings: st, UI: u}
}

// Load locates and parses the manifest and joins it with the ledger. The
// result is memoized until this runtime is discarded; it does not require
// the declarations to be satisfied.
func (r *Runtime) Load() (*Definition, error) {
	if r.defn != nil {
		return r.defn, nil
	}
	path, err := manifest.Locate(r.Dir, r.Settings.Gemfile)
	if err != nil {
		return nil, err
	}
	mf, err := manifest.Parse(path)
	if err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	led, err := readLedger(ledgerPath(root, r.Settings))
	if err != nil {
		return nil, err
	}

	defn := &Definition{ManifestPath: path, Root: root, Source: mf.Source}
	for _, g := range mf.Gems {
		d := Dep{Name: g.Name, Requirement: strings.Join(g.Requirements, ", ")}
		if e, ok := led.Gems[g.Name]; ok {
			d.Installed = true
			d.Version = e.Version
			d.License = e.License
		}
		defn.Deps = append(defn.Deps, d)
	}
	r.defn = defn
	return defn, nil
}

// Materialize is Load plus the satisfiability check: every declared gem
// must be installed, otherwise the first missing one is reported as a
// missing-dependency error.
func (r *Runtime) Materialize() (*Definition, error) {
	defn, err := r.Load()
	if err != nil {
		return nil, err
	}
	for _, d := range defn.Deps {
		if !d.Installed {
			return nil, errkind.MissingDependencyf(
				"Could not find gem '%s' in locally installed gems.", d.Label())
		}
	}
	return defn, nil
}

// Install records every declared gem as installed and refreshes the
// lockfile. Fetching and building artifacts is the resolver's business
// elsewhere; the ledger stands in for the gem store.
func (r *Runtime) Install(defn *Definition) error {
	path := ledgerPath(defn.Root, r.Settings)
	led, err := readLedger(path)
	if err != nil {
		return err
	}
	for i := range defn.Deps {
		d := &defn.Deps[i]
		entry := led.Gems[d.Name]
		if entry.Version == "" {
			entry.Version = Pinned(d.Requirement)
		}
		led.Gems[d.Name] = entry
		d.Installed = true
		d.Version = entry.Version
		d.License = entry.License
	}
	if err := writeLedger(path, led); err != nil {
		return err
	}
	return writeLockfile(defn)
}

// Update re-records the named gems, or every declared gem when names is
// empty, at the version their requirement pins, then refreshes the
// lockfile.
func (r *Runtime) Update(defn *Definition, names []string) error {
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	path := ledgerPath(defn.Root, r.Settings)
	led, err := readLedger(path)
	if err != nil {
		return err
	}
	for i := range defn.Deps {
		d := &defn.Deps[i]
		if len(names) > 0 && !wanted[d.Name] {
			continue
		}
		entry := led.Gems[d.Name]
		entry.Version = Pinned(d.Requirement)
		led.Gems[d.Name] = entry
		d.Installed = true
		d.Version = entry.Version
	}
	if err := writeLedger(path, led); err != nil {
		return err
	}
	return writeLockfile(defn)
}

// Clean drops ledger entries the manifest no longer declares and returns
// the removed "name (version)" labels, sorted.
func (r *Runtime) Clean(defn *Definition, dryRun bool) ([]string, error) {
	path := ledgerPath(defn.Root, r.Settings)
	led, err := readLedger(path)
	if err != nil {
		return nil, err
	}
	declared := make(map[string]bool, len(defn.Deps))
	for _, d := range defn.Deps {
		declared[d.Name] = true
	}
	var removed []string
	for name, entry := range led.Gems {
		if !declared[name] {
			removed = append(removed, fmt.Sprintf("%s (%s)", name, entry.Version))
			delete(led.Gems, name)
		}
	}
	sort.Strings(removed)
	if dryRun || len(removed) == 0 {
		return removed, nil
	}
	return removed, writeLedger(path, led)
}

var versionDigits = regexp.MustCompile(`\d[\w.]*`)

// Pinned derives the version a requirement string pins; an unconstrained
// requirement pins version 0.
func Pinned(requirement string) string {
	if m := versionDigits.FindString(requirement); m != "" {
		return m
	}
	return "0"
}
