package pipeline

import (
	"strconv"
	"strings"
)

// Command is one pipeline stage: a program and its argument vector. Commands
// are executed directly, never through a shell, so argument values need no
// escaping.
type Command struct {
	Program string
	Args    []string
}

// Spec is an ordered command chain. Each stage's standard output feeds the
// next stage's standard input.
type Spec []Command

// String renders the command for logs and error messages, quoting arguments
// that contain whitespace.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Program)
	for _, arg := range c.Args {
		if strings.ContainsAny(arg, " \t\"") || arg == "" {
			parts = append(parts, strconv.Quote(arg))
			continue
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// String renders the full chain in shell pipeline notation.
func (s Spec) String() string {
	parts := make([]string, 0, len(s))
	for _, cmd := range s {
		parts = append(parts, cmd.String())
	}
	return strings.Join(parts, " | ")
}
