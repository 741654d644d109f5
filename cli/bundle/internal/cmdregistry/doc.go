// Package cmdregistry defines the command table the CLI dispatches through.
// Each command contributes a descriptor naming its aliases, option schema,
// and handler; main.go stays a thin argv pre-scan while the implementations
// live in their own packages under internal/commands.
package cmdregistry
