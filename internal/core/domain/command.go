package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Args is the executable followed by its arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Wait blocks until the process exits and captures its output.
	Wait bool
}

// Name returns the executable, or an empty string for an empty command.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// String returns the command line for display.
func (c Command) String() string {
	return strings.Join(c.Args, " ")
}
