package manifest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Injector edits gem declarations in place while preserving every unrelated
// line. Each edit takes an advisory lock on a sibling lock file, rewrites
// the manifest to a temp file, and renames it over the original.
type Injector struct {
	path     string
	lockWait time.Duration
}

// NewInjector returns an editor for the manifest at path.
func NewInjector(path string) *Injector {
	return &Injector{path: path, lockWait: 5 * time.Second}
}

// Add writes declarations for gems, replacing any existing line that
// declares the same name so a re-add updates in place.
func (in *Injector) Add(gems []Gem) error {
	return in.edit(func(lines []string) ([]string, error) {
		for _, g := range gems {
			rendered := renderGem(g)
			replaced := false
			for i, line := range lines {
				if m := gemLine.FindStringSubmatch(line); m != nil && m[1] == g.Name {
					lines[i] = rendered
					replaced = true
					break
				}
			}
			if !replaced {
				lines = append(lines, rendered)
			}
		}
		return lines, nil
	})
}

// Remove deletes the declarations for names. A name the manifest does not
// declare fails the whole edit before anything is written.
func (in *Injector) Remove(names []string) error {
	return in.edit(func(lines []string) ([]string, error) {
		found := make(map[string]bool, len(names))
		var kept []string
		for _, line := range lines {
			if m := gemLine.FindStringSubmatch(line); m != nil && nameListed(names, m[1]) {
				found[m[1]] = true
				continue
			}
			kept = append(kept, line)
		}
		for _, name := range names {
			if !found[name] {
				return nil, fmt.Errorf("`%s` is not specified in %s so it could not be removed", name, in.path)
			}
		}
		return kept, nil
	})
}

func (in *Injector) edit(transform func([]string) ([]string, error)) error {
	lock := flock.New(in.path + ".lck")
	ctx, cancel := context.WithTimeout(context.Background(), in.lockWait)
	defer cancel()
	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("lock %s: %w", in.path, err)
	}
	if !locked {
		return fmt.Errorf("timed out waiting for the lock on %s", in.path)
	}
	defer lock.Unlock()

	data, err := os.ReadFile(in.path)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}
	lines, err = transform(lines)
	if err != nil {
		return err
	}

	tmp := in.path + ".tmp"
	body := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, in.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", in.path, err)
	}
	return nil
}

func renderGem(g Gem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "gem %q", g.Name)
	for _, r := range g.Requirements {
		fmt.Fprintf(&b, ", %q", r)
	}
	if g.Group != "" {
		fmt.Fprintf(&b, ", group: :%s", g.Group)
	}
	if g.Source != "" {
		fmt.Fprintf(&b, ", source: %q", g.Source)
	}
	return b.String()
}

func nameListed(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
