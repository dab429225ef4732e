// Package generator runs the synthetic data pipeline: time axis, chaos
// mask, sampling and chaos injection.
package generator

import (
	"fmt"
	"time"

	"github.com/pborman/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/axis"
	"github.com/go-graphite/synthtools/chaos"
	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/metrics"
	"github.com/go-graphite/synthtools/sampler"
)

// Options describe one data set.  Zero values of Registry and Profiles
// select the built-in sets; a zero Start selects the epoch; a zero Seed
// picks one from the clock.
type Options struct {
	Factor       float64
	Classes      []string
	Match        string
	Profile      string
	Distribution string
	Interval     int
	Samples      int
	Start        time.Time
	Seed         int64

	Registry metrics.Registry
	Profiles chaos.Profiles
}

// DefaultOptions mirror the defaults of the generate sub-command.
func DefaultOptions() Options {
	return Options{
		Factor:       1.0,
		Classes:      []string{metrics.LabelCPU},
		Profile:      chaos.ProfileMonday9to10,
		Distribution: "binomial",
		Interval:     5,
		Samples:      12,
	}
}

// Result is a generated data set.
type Result struct {
	Info synthtools.RunInfo

	// Raw holds the sampled values before chaos was applied, Table the
	// final values.  Both carry the Chaos mask column first.
	Raw   *frame.Table
	Table *frame.Table

	// Classes are the labels chaos was applied to.
	Classes []string

	// Matched is the number of samples the profile selected.
	Matched int
}

type plan struct {
	times   []time.Time
	profile chaos.Profile
	dist    sampler.Distribution
	classes []string
	reg     metrics.Registry
}

func (o *Options) defaults() {
	if o.Registry == nil {
		o.Registry = metrics.Default()
	}
	if o.Profiles == nil {
		o.Profiles = chaos.Builtin()
	}
	if o.Start.IsZero() {
		o.Start = synthtools.Epoch
	}
}

// Validate reports the first usage error in o without generating data.
func (o Options) Validate() error {
	o.defaults()
	_, err := o.plan()
	return err
}

func (o Options) plan() (*plan, error) {
	p := &plan{reg: o.Registry}
	var err error

	if p.dist, err = sampler.Lookup(o.Distribution); err != nil {
		return nil, err
	}
	if p.profile, err = o.Profiles.Lookup(o.Profile); err != nil {
		return nil, err
	}
	if err = chaos.CheckFactor(o.Factor); err != nil {
		return nil, err
	}
	if p.times, err = axis.Build(o.Start, o.Interval, o.Samples); err != nil {
		return nil, err
	}
	if err = o.Registry.Validate(); err != nil {
		return nil, err
	}

	classes, unknown := metrics.FilterList(o.Classes, o.Registry)
	if len(unknown) > 0 {
		return nil, synthtools.NewUsageError("chaos class", unknown[0], o.Registry.Labels())
	}
	if o.Match != "" {
		matched, err := metrics.FilterRegex(o.Match, o.Registry)
		if err != nil {
			return nil, synthtools.Invalid("chaos match", o.Match, err.Error())
		}
		classes, _ = metrics.FilterList(append(classes, matched...), o.Registry)
	}
	p.classes = classes

	return p, nil
}

// Generate builds the data set described by o.  On error no table is
// returned.
func Generate(o Options) (*Result, error) {
	o.defaults()
	p, err := o.plan()
	if err != nil {
		return nil, err
	}

	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	res := &Result{
		Info: synthtools.RunInfo{
			ID:           uuid.New(),
			Seed:         seed,
			Distribution: p.dist.Name(),
			Profile:      p.profile.Name(),
			Factor:       o.Factor,
		},
		Classes: p.classes,
	}
	logger := log.WithFields(log.Fields{"run": res.Info.ID, "seed": seed})
	logger.Debugf("Generating %d samples every %ds from %s",
		len(p.times), o.Interval, p.times[0].Format(time.RFC3339))

	mask, err := chaos.Mask(p.times, o.Factor, p.profile)
	if err != nil {
		return nil, err
	}
	res.Matched = chaos.Matched(mask)

	raw, err := sampler.Sample(p.reg, p.dist, p.times, seed)
	if err != nil {
		return nil, fmt.Errorf("sampling: %w", err)
	}

	final, err := chaos.Apply(p.classes, raw, mask, p.reg)
	if err != nil {
		return nil, err
	}
	logger.Debugf("Chaos profile %s matched %d samples, factor %v applied to %v",
		p.profile.Name(), res.Matched, o.Factor, p.classes)

	if res.Raw, err = withMask(raw, mask); err != nil {
		return nil, err
	}
	if res.Table, err = withMask(final, mask); err != nil {
		return nil, err
	}

	return res, nil
}

// withMask returns tbl with the chaos mask as its first column.
func withMask(tbl *frame.Table, mask []float64) (*frame.Table, error) {
	out := frame.New(tbl.Index)
	if err := out.Add(metrics.LabelChaos, mask); err != nil {
		return nil, err
	}
	for _, c := range tbl.Columns {
		if err := out.Add(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
