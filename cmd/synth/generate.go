package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/axis"
	"github.com/go-graphite/synthtools/config"
	"github.com/go-graphite/synthtools/generator"
	"github.com/go-graphite/synthtools/metrics"
	"github.com/go-graphite/synthtools/render"
)

// GenerateFlags holds the generate sub-command's options.
type GenerateFlags struct {
	Factor       float64
	Classes      *classList
	Match        string
	Profile      string
	Distribution string
	Interval     int
	Samples      int
	Retention    string
	Start        string
	Output       string
	Out          string
	Compress     string
	ChartFormat  string
	Prefix       string
	Seed         int64
}

var generateFlags = GenerateFlags{
	Classes: newClassList(metrics.LabelCPU),
}

func init() {
	usage := "[options]"
	short := "Generate a synthetic monitoring data set."
	long := `Generate samples of every monitored metric on a fixed time axis
starting at 2025-01-01 00:00:00 UTC, multiply the chosen chaos classes by
the chaos factor wherever the chaos profile matches, clamp them into their
valid range, and render the result.

The -class flag may be repeated or take a comma separated list of metric
labels or keys.  Use the "metrics" sub-command to list them and the
"profiles" sub-command to list the chaos profiles.  A -retention such as
5s:1m overrides -interval and -samples.

Flags not given on the command line take their value from the generate
section of the -config file when it sets one.

Invalid choices exit with status 2 and produce no output.`

	c := NewCommand(generateCommand, "generate", usage, short, long)
	SetupCommon(c)

	f := &generateFlags
	o := generator.DefaultOptions()
	for _, name := range []string{"f", "factor"} {
		c.Flag.Float64Var(&f.Factor, name, o.Factor,
			"Chaos factor multiplied into the chaos classes.")
	}
	for _, name := range []string{"c", "class"} {
		c.Flag.Var(f.Classes, name,
			"Metric label or key to apply chaos to.  Repeatable.")
	}
	c.Flag.StringVar(&f.Match, "match", "",
		"Regular expression selecting additional chaos classes by label.")
	for _, name := range []string{"p", "profile"} {
		c.Flag.StringVar(&f.Profile, name, o.Profile,
			"Chaos profile selecting the chaotic samples.")
	}
	for _, name := range []string{"d", "distribution"} {
		c.Flag.StringVar(&f.Distribution, name, o.Distribution,
			fmt.Sprintf("Sampling distribution: %v", synthtools.SupportedDistributions))
	}
	for _, name := range []string{"i", "interval"} {
		c.Flag.IntVar(&f.Interval, name, o.Interval,
			"Seconds between samples.")
	}
	for _, name := range []string{"s", "samples"} {
		c.Flag.IntVar(&f.Samples, name, o.Samples,
			"Number of samples.")
	}
	for _, name := range []string{"r", "retention"} {
		c.Flag.StringVar(&f.Retention, name, "",
			"Graphite retention definition such as 5s:1m.")
	}
	c.Flag.StringVar(&f.Start, "start", "",
		"First timestamp, 2006-01-02 or RFC 3339. Default 2025-01-01.")
	for _, name := range []string{"o", "output"} {
		c.Flag.StringVar(&f.Output, name, "table",
			fmt.Sprintf("Output format: %v", synthtools.SupportedOutputs))
	}
	c.Flag.StringVar(&f.Out, "out", "-",
		"Write output to this file, - for STDOUT.")
	c.Flag.StringVar(&f.Compress, "compress", "none",
		fmt.Sprintf("Compress the output: %v", synthtools.SupportedCompressions))
	c.Flag.StringVar(&f.ChartFormat, "chart-format", "png",
		"Image format of chart output: png or svg.")
	c.Flag.StringVar(&f.Prefix, "prefix", "synth",
		"Prefix of Graphite paths and Prometheus metric names.")
	c.Flag.Int64Var(&f.Seed, "seed", 0,
		"Random seed.  0 picks one from the clock.")
}

// merge fills the flags not visited on the command line from the
// generate section of the configuration file.
func (f *GenerateFlags) merge(cfg config.Generate, set map[string]bool) {
	if cfg.Factor != 0 && !anySet(set, "f", "factor") {
		f.Factor = cfg.Factor
	}
	if len(cfg.Class) > 0 && !anySet(set, "c", "class") {
		f.Classes = newClassList(cfg.Class...)
	}
	if cfg.Match != "" && !set["match"] {
		f.Match = cfg.Match
	}
	if cfg.Profile != "" && !anySet(set, "p", "profile") {
		f.Profile = cfg.Profile
	}
	if cfg.Distribution != "" && !anySet(set, "d", "distribution") {
		f.Distribution = cfg.Distribution
	}
	if cfg.Interval != 0 && !anySet(set, "i", "interval") {
		f.Interval = cfg.Interval
	}
	if cfg.Samples != 0 && !anySet(set, "s", "samples") {
		f.Samples = cfg.Samples
	}
	if cfg.Retention != "" && !anySet(set, "r", "retention", "i", "interval", "s", "samples") {
		f.Retention = cfg.Retention
	}
	if cfg.Start != "" && !set["start"] {
		f.Start = cfg.Start
	}
	if cfg.Output != "" && !anySet(set, "o", "output") {
		f.Output = cfg.Output
	}
	if cfg.Compress != "" && !set["compress"] {
		f.Compress = cfg.Compress
	}
	if cfg.ChartFormat != "" && !set["chart-format"] {
		f.ChartFormat = cfg.ChartFormat
	}
	if cfg.Prefix != "" && !set["prefix"] {
		f.Prefix = cfg.Prefix
	}
	if cfg.Seed != 0 && !set["seed"] {
		f.Seed = cfg.Seed
	}
}

// stdoutIsTerminal reports whether STDOUT is attached to a terminal.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// binary reports whether the rendering is not meant for a terminal.
func (f *GenerateFlags) binary() bool {
	switch f.Output {
	case "chart", "graph", "pickle":
		return true
	}
	return f.Compress != "none" && f.Compress != ""
}

// checkDestination refuses to write binary output to a terminal.
func (f *GenerateFlags) checkDestination() error {
	if (f.Out == "" || f.Out == "-") && f.binary() && stdoutIsTerminal() {
		return synthtools.Invalid("output", f.Output,
			"binary data would be written to the terminal, use -out FILE or redirect STDOUT")
	}
	return nil
}

// options checks the flags that do not need the generator and builds
// its options.
func (f *GenerateFlags) options(env *Environment) (generator.Options, error) {
	o := generator.Options{
		Factor:       f.Factor,
		Classes:      f.Classes.Values(),
		Match:        f.Match,
		Profile:      f.Profile,
		Distribution: f.Distribution,
		Interval:     f.Interval,
		Samples:      f.Samples,
		Seed:         f.Seed,
		Registry:     env.Registry,
		Profiles:     env.Profiles,
	}

	var err error
	if f.Retention != "" {
		if o.Interval, o.Samples, err = axis.FromRetention(f.Retention); err != nil {
			return o, err
		}
	}
	if o.Start, err = axis.ParseStart(f.Start); err != nil {
		return o, err
	}
	if err = render.Check(f.Output); err != nil {
		return o, err
	}
	if !synthtools.Supported(synthtools.SupportedCompressions, f.Compress) {
		return o, synthtools.NewUsageError("compression", f.Compress, synthtools.SupportedCompressions)
	}
	if err = f.checkDestination(); err != nil {
		return o, err
	}

	return o, o.Validate()
}

// renderOptions builds the presenter options.  Keys come from the
// registry so configured monitors keep their configured keys.
func (f *GenerateFlags) renderOptions(res *generator.Result, reg metrics.Registry) render.Options {
	return render.Options{
		Prefix:      f.Prefix,
		ChartFormat: f.ChartFormat,
		Title: fmt.Sprintf("Synthetic Data: %s x%v on %v",
			res.Info.Profile, res.Info.Factor, res.Classes),
		Keys: func(label string) string {
			if m, ok := reg.Lookup(label); ok {
				return m.Key
			}
			return metrics.LabelToKey(label)
		},
	}
}

func generate(f *GenerateFlags, env *Environment) error {
	o, err := f.options(env)
	if err != nil {
		return err
	}

	res, err := generator.Generate(o)
	if err != nil {
		return err
	}
	if f.Seed == 0 {
		log.Infof("Seed %d", res.Info.Seed)
	}
	log.Debugf("Run %s", res.Info.String())

	out, err := render.Create(f.Out)
	if err != nil {
		return err
	}
	defer out.Close()

	// Escape codes only make sense on a terminal.
	if f.Out != "-" || f.Compress != "none" {
		color.NoColor = true
	}

	return write(out, f, res, env.Registry)
}

func write(out io.WriteCloser, f *GenerateFlags, res *generator.Result, reg metrics.Registry) error {
	enc, err := render.NewEncoder(out, f.Compress)
	if err != nil {
		return err
	}
	if err := render.Render(f.Output, enc, res.Table, f.renderOptions(res, reg)); err != nil {
		return fmt.Errorf("rendering %s: %w", f.Output, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing %s: %w", f.Compress, err)
	}
	return out.Close()
}

// generateCommand runs this subcommand.
func generateCommand(c Command) int {
	if c.Flag.NArg() > 0 {
		log.Errorf("unexpected arguments: %v", c.Flag.Args())
		return 2
	}

	env, err := LoadEnvironment()
	if err != nil {
		return exitCode(err)
	}
	generateFlags.merge(env.Config.Generate, visited(c.Flag))

	return exitCode(generate(&generateFlags, env))
}
