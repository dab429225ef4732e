package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

import . "github.com/go-graphite/synthtools"

func init() {
	usage := "[sub-command]"
	short := "Provide help for each sub-command."
	long := `Without an argument, list the synth sub-commands with a one line
summary each.  With a sub-command name, print its flags and the full
description of what it does.`

	NewCommand(helpCommand, "help", usage, short, long)
	NewCommand(helpCommand, "--help", usage, short, long)
	NewCommand(helpCommand, "-h", usage, short, long)
}

// alias reports whether name is only another spelling of "help".
func alias(name string) bool {
	return name == "--help" || name == "-h"
}

// writeSummary lists the sub-commands, aliases excluded.
func writeSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, c := range commands {
		if alias(c.Name) {
			continue
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", c.Name, c.Usage, c.Short)
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, c Command) {
	fmt.Fprintf(w, "synth %s (version %s)\n\n", c.Name, Version)
	fmt.Fprintf(w, "Usage: %s %s %s\n\n", os.Args[0], c.Name, c.Usage)

	c.Flag.SetOutput(w)
	c.Flag.PrintDefaults()

	fmt.Fprintf(w, "\n%s\n", c.Long)
}

func helpCommand(cmd Command) int {
	if cmd.Flag.NArg() == 0 {
		usage()
		return exitCode(writeSummary(os.Stdout))
	}

	c, ok := commands.Lookup(cmd.Flag.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown sub-command: %s\n", cmd.Flag.Arg(0))
		return 2
	}
	writeDetail(os.Stdout, c)
	return 0
}
