// Package config loads the optional YAML file that tunes the generator:
// defaults for the generate sub-command, per monitor sampling and clamp
// parameters, and additional chaos window profiles.
package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/go-graphite/synthtools/chaos"
	"github.com/go-graphite/synthtools/metrics"
)

// Config is the parsed YAML file.  Every field is optional.
type Config struct {
	Generate Generate                 `yaml:"generate"`
	Monitors map[string]MonitorConfig `yaml:"monitors"`
	Profiles []WindowConfig           `yaml:"profiles"`
}

// Generate holds defaults for flags of the generate sub-command.  Flags
// given on the command line always win.
type Generate struct {
	Factor       float64  `yaml:"factor"`
	Class        []string `yaml:"class"`
	Match        string   `yaml:"match"`
	Profile      string   `yaml:"profile"`
	Distribution string   `yaml:"distribution"`
	Interval     int      `yaml:"interval"`
	Samples      int      `yaml:"samples"`
	Retention    string   `yaml:"retention"`
	Start        string   `yaml:"start"`
	Output       string   `yaml:"output"`
	Compress     string   `yaml:"compress"`
	ChartFormat  string   `yaml:"chart_format"`
	Prefix       string   `yaml:"prefix"`
	Seed         int64    `yaml:"seed"`
}

// MonitorConfig overrides the parameters of the monitor whose key or label
// is used as its map key.  A map key naming no known monitor adds a new
// one, which then needs a label and every parameter.
type MonitorConfig struct {
	Label            string   `yaml:"label"`
	Min              *float64 `yaml:"min"`
	Max              *float64 `yaml:"max"`
	Low              *int     `yaml:"low"`
	High             *int     `yaml:"high"`
	Trials           *int     `yaml:"trials"`
	Probability      *float64 `yaml:"probability"`
	DegreesOfFreedom *float64 `yaml:"dof"`
}

// WindowConfig describes a chaos.Window profile.
type WindowConfig struct {
	Name      string   `yaml:"name"`
	Weekdays  []string `yaml:"weekdays"`
	StartHour int      `yaml:"start_hour"`
	EndHour   int      `yaml:"end_hour"`
}

// Load reads the YAML file at path.  An empty path returns an empty
// configuration.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}

	return cfg, nil
}

// Registry returns base with the monitor overrides applied.  base is not
// modified.
func (c *Config) Registry(base metrics.Registry) (metrics.Registry, error) {
	reg := base.Clone()
	names := make([]string, 0, len(c.Monitors))
	for name := range c.Monitors {
		names = append(names, name)
	}
	// New monitors are appended in a stable order.
	sort.Strings(names)

	for _, name := range names {
		mc := c.Monitors[name]
		i := reg.Index(name)
		if i < 0 {
			if mc.Label == "" {
				return nil, fmt.Errorf("monitor %s: unknown monitor needs a label", name)
			}
			reg = append(reg, metrics.Monitor{Key: name})
			i = len(reg) - 1
		}
		m := &reg[i]
		if mc.Label != "" {
			m.Label = mc.Label
		}
		setFloat(&m.Min, mc.Min)
		setFloat(&m.Max, mc.Max)
		setInt(&m.Low, mc.Low)
		setInt(&m.High, mc.High)
		setInt(&m.Trials, mc.Trials)
		setFloat(&m.Probability, mc.Probability)
		setFloat(&m.DegreesOfFreedom, mc.DegreesOfFreedom)
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("config monitors: %w", err)
	}
	return reg, nil
}

// ChaosProfiles returns base plus the configured window profiles.
func (c *Config) ChaosProfiles(base chaos.Profiles) (chaos.Profiles, error) {
	ps := make(chaos.Profiles, len(base)+len(c.Profiles))
	for n, p := range base {
		ps[n] = p
	}

	for _, wc := range c.Profiles {
		w := chaos.Window{Label: wc.Name, StartHour: wc.StartHour, EndHour: wc.EndHour}
		for _, s := range wc.Weekdays {
			d, err := chaos.ParseWeekday(s)
			if err != nil {
				return nil, fmt.Errorf("profile %s: %w", wc.Name, err)
			}
			w.Weekdays = append(w.Weekdays, d)
		}
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if err := ps.Add(w); err != nil {
			return nil, err
		}
	}

	return ps, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
