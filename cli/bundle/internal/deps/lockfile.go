package deps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LockfileFor maps a manifest path to its lock path, following the
// Gemfile/Gemfile.lock and gems.rb/gems.locked pairings.
func LockfileFor(manifestPath string) string {
	dir := filepath.Dir(manifestPath)
	base := filepath.Base(manifestPath)
	if base == "gems.rb" {
		return filepath.Join(dir, "gems.locked")
	}
	return filepath.Join(dir, base+".lock")
}

// writeLockfile renders the deterministic lock listing for defn: the specs
// the store holds and the requirements the manifest declares.
func writeLockfile(defn *Definition) error {
	var b strings.Builder
	b.WriteString("GEM\n")
	if defn.Source != "" {
		fmt.Fprintf(&b, "  remote: %s\n", defn.Source)
	}
	b.WriteString("  specs:\n")
	for _, d := range defn.Sorted() {
		fmt.Fprintf(&b, "    %s (%s)\n", d.Name, d.Version)
	}
	b.WriteString("\nDEPENDENCIES\n")
	for _, d := range defn.Sorted() {
		if d.Requirement != "" {
			fmt.Fprintf(&b, "  %s (%s)\n", d.Name, d.Requirement)
		} else {
			fmt.Fprintf(&b, "  %s\n", d.Name)
		}
	}
	return os.WriteFile(LockfileFor(defn.ManifestPath), []byte(b.String()), 0o644)
}
