// Package errkind classifies the failures the bundle CLI tells apart:
// malformed user input, command names no resolver recognizes, and gems the
// manifest declares but the local store lacks. The missing-dependency kind
// is the only recoverable one; the auto-install guard repairs it once per
// invocation and everything else propagates to the entrypoint.
package errkind

import (
	"errors"
	"fmt"
)

// Kind labels an error class with dispatch-relevant semantics.
type Kind int

const (
	// KindGeneric marks failures with no special handling.
	KindGeneric Kind = iota
	// KindInvalidOption marks malformed or missing user input.
	KindInvalidOption
	// KindUnknownCommand marks a token no resolver could claim.
	KindUnknownCommand
	// KindMissingDependency marks a declared gem that is not installed.
	KindMissingDependency
)

// Error pairs a kind with a user-facing message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return e.Msg + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches by kind so errors.Is works against kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with formatting.
func Newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// InvalidOption reports malformed or missing user input.
func InvalidOption(msg string) error { return New(KindInvalidOption, msg) }

// InvalidOptionf is InvalidOption with formatting.
func InvalidOptionf(format string, args ...any) error {
	return Newf(KindInvalidOption, format, args...)
}

// UnknownCommandf reports a command no resolver recognized.
func UnknownCommandf(format string, args ...any) error {
	return Newf(KindUnknownCommand, format, args...)
}

// MissingDependencyf reports an unsatisfied gem declaration.
func MissingDependencyf(format string, args ...any) error {
	return Newf(KindMissingDependency, format, args...)
}

// IsInvalidOption reports whether err carries the invalid-option kind.
func IsInvalidOption(err error) bool {
	return errors.Is(err, &Error{Kind: KindInvalidOption})
}

// IsUnknownCommand reports whether err carries the unknown-command kind.
func IsUnknownCommand(err error) bool {
	return errors.Is(err, &Error{Kind: KindUnknownCommand})
}

// IsMissingDependency reports whether err carries the missing-dependency
// kind anywhere in its chain.
func IsMissingDependency(err error) bool {
	return errors.Is(err, &Error{Kind: KindMissingDependency})
}
