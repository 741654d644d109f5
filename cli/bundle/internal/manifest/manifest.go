// Package manifest locates, parses, and edits the project Gemfile. Parsing
// covers the declaration subset dispatch needs: the source line and gem
// lines with their version requirements. Edits go through the Injector,
// which holds an advisory lock and replaces the file atomically so two
// invocations cannot interleave a read-modify-write.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultName is the manifest filename init writes and discovery probes
// first.
const DefaultName = "Gemfile"

// discovery probes these names at each level of the upward walk, in order.
var manifestNames = []string{DefaultName, "gems.rb"}

var (
	gemLine     = regexp.MustCompile(`^\s*gem\s+["']([A-Za-z0-9_.\-]+)["'](.*)$`)
	sourceLine  = regexp.MustCompile(`^\s*source\s+["']([^"']+)["']`)
	quotedArg   = regexp.MustCompile(`["']([^"']+)["']`)
	requirement = regexp.MustCompile(`^(~>|>=|<=|!=|>|<|=)?\s*\d`)
)

// Gem is one dependency declaration.
type Gem struct {
	Name         string
	Requirements []string
	Group        string
	Source       string
}

// File is a parsed manifest.
type File struct {
	Path   string
	Source string
	Gems   []Gem
}

// Locate finds the manifest for dir. An explicit override wins and must
// exist; otherwise the walk climbs from dir toward the filesystem root,
// probing for Gemfile then gems.rb at each level.
func Locate(dir, override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		path := override
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("the Gemfile at %s does not exist", path)
		}
		return path, nil
	}
	cur := dir
	for {
		for _, name := range manifestNames {
			candidate := filepath.Join(cur, name)
			if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", errors.New("Could not locate Gemfile")
		}
		cur = parent
	}
}

// Parse reads and decodes the manifest at path.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := &File{Path: path}
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if m := sourceLine.FindStringSubmatch(line); m != nil {
			f.Source = m[1]
			continue
		}
		if m := gemLine.FindStringSubmatch(line); m != nil {
			g := Gem{Name: m[1]}
			for _, q := range quotedArg.FindAllStringSubmatch(m[2], -1) {
				if requirement.MatchString(q[1]) {
					g.Requirements = append(g.Requirements, q[1])
				}
			}
			f.Gems = append(f.Gems, g)
		}
	}
	return f, nil
}

// Lookup returns the declaration for name.
func (f *File) Lookup(name string) (Gem, bool) {
	for _, g := range f.Gems {
		if g.Name == name {
			return g, true
		}
	}
	return Gem{}, false
}
