package cmdregistry

import (
	"fmt"
	"sort"

	"github.com/kayger44/rubygems/cli/bundle/internal/cliopts"
)

// Handler executes a command given the shared invocation context.
type Handler func(*Context) error

// Descriptor declares one command.
type Descriptor struct {
	Name    string
	Aliases []string
	Summary string
	Usage   string
	Options []cliopts.Spec
	Handler Handler
	// Hidden commands stay dispatchable but are left out of listings.
	Hidden bool
	// ForwardArgs stops option parsing at the first positional so the
	// remaining argv reaches a child process verbatim.
	ForwardArgs bool
}

// Registry maps command names and aliases to descriptors. It is built once
// at startup and read-only afterwards.
type Registry struct {
	commands map[string]Descriptor
	names    map[string]string // name or alias -> primary name
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		commands: make(map[string]Descriptor),
		names:    make(map[string]string),
	}
}

// Register adds d to the registry. It panics when the name or an alias
// collides with an existing entry, or when the option schema reuses a flag
// name or alias within the command; both are programmer errors in the
// static command table, caught by any test that builds it.
func (r *Registry) Register(d Descriptor) {
	if d.Name == "" {
		panic("cmdregistry: descriptor without a name")
	}
	if d.Handler == nil {
		panic(fmt.Sprintf("cmdregistry: command %s has no handler", d.Name))
	}
	claim := func(key string) {
		if prev, exists := r.names[key]; exists {
			panic(fmt.Sprintf("cmdregistry: %q already registered by command %s", key, prev))
		}
		r.names[key] = d.Name
	}
	claim(d.Name)
	for _, alias := range d.Aliases {
		claim(alias)
	}

	// the global flags are merged into every command's schema at parse
	// time, so they claim their names here too
	flags := make(map[string]string)
	for _, spec := range globalSpecs {
		for _, key := range append([]string{spec.Name}, spec.Aliases...) {
			flags[key] = spec.Name
		}
	}
	for _, spec := range d.Options {
		for _, key := range append([]string{spec.Name}, spec.Aliases...) {
			if prev, exists := flags[key]; exists {
				panic(fmt.Sprintf("cmdregistry: command %s flag %q collides with --%s", d.Name, key, prev))
			}
			flags[key] = spec.Name
		}
	}
	r.commands[d.Name] = d
}

// Lookup resolves a command name or alias to its descriptor.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	primary, ok := r.names[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.commands[primary], true
}

// Canonical maps a name or alias to the command's primary name.
func (r *Registry) Canonical(name string) (string, bool) {
	primary, ok := r.names[name]
	return primary, ok
}

// Names returns the sorted primary names of visible commands.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.commands))
	for name, d := range r.commands {
		if d.Hidden {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Known returns every dispatchable token: primary names and aliases, hidden
// commands included.
func (r *Registry) Known() map[string]struct{} {
	out := make(map[string]struct{}, len(r.names))
	for key := range r.names {
		out[key] = struct{}{}
	}
	return out
}
