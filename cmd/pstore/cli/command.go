// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Command is one node of the command tree: a group with Subcommands, or
// a leaf with Run.
type Command struct {
	// Name is the command name as typed by the user (e.g., "decode").
	Name string

	// Summary is a one-line description shown in the parent's help listing.
	Summary string

	// Description is the multi-line text of the command's own help.
	Description string

	// Usage is the usage line (e.g., "pstore decode [flags] [file]").
	// If empty, one is built from the command path.
	Usage string

	// Examples are shown at the end of the help output.
	Examples []Example

	// Params returns a pointer to the command's parameter struct. Its
	// tagged fields become flags through [FlagsFromParams]. If nil, the
	// command accepts no flags.
	Params func() any

	// Subcommands are dispatched by the first positional argument.
	Subcommands []*Command

	// Run executes a leaf with the positional args left after flag
	// parsing and a logger scoped to the command path.
	Run func(args []string, logger *slog.Logger) error

	// parent links a dispatched subcommand back to its group, for the
	// command path in help and errors.
	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	// Description explains what the example does.
	Description string
	// Command is the literal command line.
	Command string
}

// helpOutput receives help text. Tests replace it.
var helpOutput io.Writer = os.Stderr

// Execute runs the command tree against args, normally os.Args[1:].
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(helpOutput)
		return nil
	}

	if len(c.Subcommands) > 0 {
		if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
			sub := c.subcommand(args[0])
			if sub == nil {
				return c.unknownCommand(args[0])
			}
			sub.parent = c
			return sub.Execute(args[1:])
		}
		if c.Run == nil {
			c.PrintHelp(helpOutput)
			if len(args) == 0 {
				return Validation("subcommand required")
			}
			return Validation("subcommand required (got flag %q)", args[0])
		}
	}

	positional, err := c.parseFlags(args)
	if err != nil {
		return err
	}
	if c.Run == nil {
		return Validation("no action defined for %q", c.fullName())
	}
	return c.Run(positional, NewCommandLogger(c.fullName()))
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) unknownCommand(name string) error {
	var err *ToolError
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		err = Validation("unknown command %q (did you mean %q?)", name, suggestion)
	} else {
		err = Validation("unknown command %q", name)
	}
	return err.WithHint(c.helpHint())
}

// parseFlags binds a fresh flag set to Params, parses args, and returns
// the positional arguments. Without Params every argument is positional.
func (c *Command) parseFlags(args []string) ([]string, error) {
	flagSet := c.flagSet()
	if flagSet == nil {
		return args, nil
	}
	flagSet.SetOutput(io.Discard)

	if err := flagSet.Parse(args); err != nil {
		message := err.Error()
		if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand") {
			// Suggest against a clean flag set; the failed parse has
			// already written into the first one.
			if suggestion := suggestFlag(args, c.flagSet()); suggestion != "" {
				message += " (did you mean " + suggestion + "?)"
			}
		}
		return nil, Validation("%s", message).WithHint(c.helpHint())
	}
	return flagSet.Args(), nil
}

// flagSet builds a fresh flag set from Params, or returns nil.
func (c *Command) flagSet() *pflag.FlagSet {
	if c.Params == nil {
		return nil
	}
	return FlagsFromParams(c.Name, c.Params())
}

func (c *Command) helpHint() string {
	return "Run '" + c.fullName() + " --help' for usage."
}

// fullName returns the complete command path (e.g., "pstore decode").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
