package cliopts

import (
	"strconv"
	"strings"

	"github.com/kayger44/rubygems/cli/bundle/internal/errkind"
)

// Parse applies specs to args. Flags may appear as --name, --name=value,
// --name value, or through short aliases (-x), before or after positional
// tokens. Boolean flags accept a --no-<name> negation. A bare "--" ends flag
// parsing; everything after it is positional. Unknown flags are
// invalid-option errors.
func Parse(specs []Spec, args []string) (Values, []string, error) {
	return parse(specs, args, false)
}

// ParseForward is Parse for commands that hand their tail to a child
// process: the first positional token ends flag parsing, and it plus
// everything after it come back untouched, flags included.
func ParseForward(specs []Spec, args []string) (Values, []string, error) {
	return parse(specs, args, true)
}

func parse(specs []Spec, args []string, forward bool) (Values, []string, error) {
	long := make(map[string]*Spec, len(specs))
	short := make(map[string]*Spec)
	for i := range specs {
		s := &specs[i]
		long[s.Name] = s
		for _, a := range s.Aliases {
			short[a] = s
		}
	}

	vals := make(Values, len(specs))
	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i+1:]...)
			break
		}

		var (
			spec    *Spec
			inline  string
			hasEq   bool
			negated bool
		)
		switch {
		case strings.HasPrefix(arg, "--"):
			name := arg[2:]
			if eq := strings.IndexByte(name, '='); eq >= 0 {
				name, inline, hasEq = name[:eq], name[eq+1:], true
			}
			if s, ok := long[name]; ok {
				spec = s
			} else if trimmed, found := strings.CutPrefix(name, "no-"); found {
				if s, ok := long[trimmed]; ok && s.Type == Bool {
					spec, negated = s, true
				}
			}
			if spec == nil {
				return nil, nil, errkind.InvalidOptionf("Unknown switches %q", arg)
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			s, ok := short[arg[1:]]
			if !ok {
				return nil, nil, errkind.InvalidOptionf("Unknown switches %q", arg)
			}
			spec = s
		default:
			if forward {
				rest = append(rest, args[i:]...)
				applyDefaults(specs, vals)
				return vals, rest, nil
			}
			rest = append(rest, arg)
			continue
		}

		if spec.Type == Bool {
			if hasEq {
				return nil, nil, errkind.InvalidOptionf("option --%s does not take a value", spec.Name)
			}
			vals[spec.Name] = !negated
			continue
		}

		raw, ok := inline, hasEq
		if !ok && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			raw, ok = args[i+1], true
			i++
		}
		if !ok || (raw == "" && spec.LazyDefault != nil) {
			if spec.LazyDefault == nil {
				return nil, nil, errkind.InvalidOptionf("option --%s requires a value", spec.Name)
			}
			store(vals, spec, spec.LazyDefault)
			continue
		}
		typed, err := coerce(spec, raw)
		if err != nil {
			return nil, nil, err
		}
		store(vals, spec, typed)
	}
	applyDefaults(specs, vals)
	return vals, rest, nil
}

func coerce(spec *Spec, raw string) (any, error) {
	switch spec.Type {
	case Int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errkind.InvalidOptionf("option --%s expects a number, got %q", spec.Name, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func store(vals Values, spec *Spec, v any) {
	if spec.Type == StringList {
		switch item := v.(type) {
		case string:
			vals[spec.Name] = append(vals.StringList(spec.Name), item)
		case []string:
			vals[spec.Name] = append(vals.StringList(spec.Name), item...)
		}
		return
	}
	vals[spec.Name] = v
}

func applyDefaults(specs []Spec, vals Values) {
	for i := range specs {
		s := &specs[i]
		if s.Default == nil || vals.Has(s.Name) {
			continue
		}
		vals[s.Name] = s.Default
	}
}
