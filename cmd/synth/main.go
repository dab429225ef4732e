package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"
)

import . "github.com/go-graphite/synthtools"

// Generated data goes to STDOUT (or the -out file).  Status, errors, and
// the seed of a run are handled via the log interface on STDERR.

type Command struct {
	// Name is the subcommand name
	Name string

	// Run the command.  Sub-commands must return their OS return code.
	Run func(c Command) int

	// Usage is the one line usage
	Usage string

	// Short is a one line help description
	Short string

	// Long help description
	Long string

	// Flag holds the FlagSet that the subcommand has setup for itself
	Flag *flag.FlagSet
}

type CommandList []Command

// All the registered commands, sorted by name before dispatch
var commands CommandList

func (c CommandList) Len() int           { return len(c) }
func (c CommandList) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c CommandList) Less(i, j int) bool { return c[i].Name < c[j].Name }

// Lookup finds a registered sub-command by name.
func (c CommandList) Lookup(name string) (Command, bool) {
	for _, cmd := range c {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// NewCommand is called by the init() function in sub-command files to
// register themselves at startup.  After registering itself, the sub-
// command code may then setup flags.  Bad flags exit 2.
func NewCommand(run func(c Command) int, name, usage, short, long string) Command {
	c := Command{
		Name:  name,
		Run:   run,
		Usage: usage,
		Short: short,
		Long:  long,
		Flag:  flag.NewFlagSet(name, flag.ExitOnError),
	}
	commands = append(commands, c)
	return c
}

const banner = `%s <sub-command> [options]
Version: %s

	Synth generates synthetic server monitoring data: CPU, memory, paging,
	crashes, IOPS and IO queue samples on a fixed time axis.  A chaos
	factor is multiplied into selected metrics while a chaos profile
	matches.  Data is rendered as a table, CSV, JSON or a chart, or in the
	Graphite and OpenMetrics wire formats.

	Use the "help" sub-command for available commands.

`

func usage() {
	fmt.Fprintf(os.Stderr, banner, os.Args[0], Version)
}

func setupLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if Verbose {
		log.SetLevel(log.DebugLevel)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sort.Sort(commands)
	c, ok := commands.Lookup(os.Args[1])
	if !ok {
		usage()
		os.Exit(2)
	}

	c.Flag.Parse(os.Args[2:])
	setupLogging()
	os.Exit(c.Run(c))
}
