// Package checker builds and runs invocations of the external static
// type checker.
package checker

import (
	"strings"
)

// DefaultStrictFlags are always passed to the checker, before any other
// arguments.
var DefaultStrictFlags = []string{
	"--strict-optional",
	"--disallow-untyped-defs",
	"--disallow-untyped-calls",
	"--disallow-incomplete-defs",
}

// Command describes a single checker invocation.
type Command struct {
	// Checker is the executable name or path of the type checker.
	// Bare names are resolved against PATH.
	Checker string

	// StrictFlags are passed first, in order.
	StrictFlags []string

	// ExtraArgs are inserted between StrictFlags and the forwarded
	// arguments.
	ExtraArgs []string
}

// Argv returns the full argument vector for the invocation:
// checker, strict flags, extra args, then the forwarded arguments
// verbatim and in order.
func (c *Command) Argv(forwarded []string) []string {
	argv := make([]string, 0, 1+len(c.StrictFlags)+len(c.ExtraArgs)+len(forwarded))
	argv = append(argv, c.Checker)
	argv = append(argv, c.StrictFlags...)
	argv = append(argv, c.ExtraArgs...)
	argv = append(argv, forwarded...)
	return argv
}

// String renders the invocation as a copy-pasteable shell command.
func (c *Command) String(forwarded []string) string {
	var quoted []string
	for _, arg := range c.Argv(forwarded) {
		quoted = append(quoted, shellQuote(arg))
	}
	return strings.Join(quoted, " ")
}

const shellSafe = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789-_=/.,:@%+"

func shellQuote(arg string) string {
	if arg == "" {
		return "''"
	}

	safe := true
	for _, r := range arg {
		if !strings.ContainsRune(shellSafe, r) {
			safe = false
			break
		}
	}
	if safe {
		return arg
	}

	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
