// Package cliopts declares the flag schemas commands publish and parses an
// argument tail against them. Flags and positional tokens may interleave;
// commands that forward their tail to a child process use ParseForward,
// which stops at the first positional so the child argv survives intact.
package cliopts

// Type is the value shape a flag parses into.
type Type int

const (
	// Bool flags take no value; --no-<name> clears them.
	Bool Type = iota
	// String flags take one value.
	String
	// Int flags take one numeric value.
	Int
	// StringList flags accumulate across repetitions.
	StringList
)

// Spec declares one recognized flag for a command.
type Spec struct {
	Name string
	Type Type
	// Default is applied when the flag never appears.
	Default any
	// LazyDefault is substituted when the flag appears without a value.
	LazyDefault any
	// Aliases are short forms, registered without the leading dash.
	Aliases []string
	// Desc is the one-line help text.
	Desc string
}

// Values holds parsed flag values keyed by the flag's primary name.
type Values map[string]any

// Has reports whether the flag was set or defaulted.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Bool returns the flag's boolean value, false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// String returns the flag's string value, "" when absent.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the flag's numeric value, 0 when absent.
func (v Values) Int(name string) int {
	n, _ := v[name].(int)
	return n
}

// StringList returns the accumulated values, nil when absent.
func (v Values) StringList(name string) []string {
	l, _ := v[name].([]string)
	return l
}
