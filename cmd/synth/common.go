package main

import (
	"flag"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/chaos"
	"github.com/go-graphite/synthtools/config"
	"github.com/go-graphite/synthtools/metrics"
)

// Verbose is a flag to indicate verbose (debug) logging
var Verbose bool

// ConfigFile is the optional YAML configuration file.
var ConfigFile string

// SetupCommon installs the flags every sub-command understands.
func SetupCommon(c Command) {
	c.Flag.BoolVar(&Verbose, "v", false,
		"Verbose log output.")
	c.Flag.BoolVar(&Verbose, "verbose", false,
		"Verbose log output.")
	c.Flag.StringVar(&ConfigFile, "config", "",
		"YAML file with generate defaults, monitor parameters and chaos profiles.")
}

// JSONOutput is a convenience variable for sub-commands.  If setup by
// calling SetupJSON() from a sub-command's init() this will be true if
// the -j or -json flags are present and the command should dump out JSON
// encoded data.
var JSONOutput bool

// SetupJSON installs the -j and -json flags in the given Command
func SetupJSON(c Command) {
	c.Flag.BoolVar(&JSONOutput, "j", false,
		"Instead of text output JSON encoded data.")
	c.Flag.BoolVar(&JSONOutput, "json", false,
		"Instead of text output JSON encoded data.")
}

// Environment is everything the configuration file contributes.
type Environment struct {
	Config   *config.Config
	Registry metrics.Registry
	Profiles chaos.Profiles
}

// LoadEnvironment reads ConfigFile, if any, and merges it with the
// built-in monitors and profiles.
func LoadEnvironment() (*Environment, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	reg, err := cfg.Registry(metrics.Default())
	if err != nil {
		return nil, err
	}
	profiles, err := cfg.ChaosProfiles(chaos.Builtin())
	if err != nil {
		return nil, err
	}
	if ConfigFile != "" {
		log.Debugf("Loaded %s: %d monitors, %d chaos profiles",
			ConfigFile, len(reg), len(profiles))
	}

	return &Environment{Config: cfg, Registry: reg, Profiles: profiles}, nil
}

// exitCode logs err and maps it to the process return code: 0 on
// success, 2 for usage errors and 1 for everything else.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case synthtools.IsUsage(err):
		log.Error(err)
		return 2
	default:
		log.Error(err)
		return 1
	}
}

// visited returns the names of the flags given on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// anySet reports whether any of the named flags were given.
func anySet(set map[string]bool, names ...string) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}

// classList is a flag.Value of metric names.  It may be repeated and each
// value may hold a comma separated list.  The first value given replaces
// the default.
type classList struct {
	values []string
	set    bool
}

func newClassList(defaults ...string) *classList {
	return &classList{values: defaults}
}

func (c *classList) String() string {
	if c == nil {
		return ""
	}
	return strings.Join(c.values, ",")
}

func (c *classList) Set(s string) error {
	if !c.set {
		c.values = nil
		c.set = true
	}
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			c.values = append(c.values, v)
		}
	}
	return nil
}

func (c *classList) Values() []string {
	return c.values
}
