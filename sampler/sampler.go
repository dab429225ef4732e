// Package sampler draws the raw synthetic samples for every monitor in a
// registry.
package sampler

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/hashing"
	"github.com/go-graphite/synthtools/metrics"
)

// Distribution draws one sample for a monitor.
type Distribution interface {
	Name() string
	Draw(m metrics.Monitor, r *rand.Rand) float64
}

// Uniform draws integers from the closed range [Low, High].
type Uniform struct{}

func (Uniform) Name() string { return "random" }

func (Uniform) Draw(m metrics.Monitor, r *rand.Rand) float64 {
	return float64(m.Low + r.Intn(m.High-m.Low+1))
}

// Binomial draws the number of successes of Trials attempts each
// succeeding with Probability.
type Binomial struct{}

func (Binomial) Name() string { return "binomial" }

func (Binomial) Draw(m metrics.Monitor, r *rand.Rand) float64 {
	if m.Trials == 0 {
		return 0
	}
	b := distuv.Binomial{N: float64(m.Trials), P: m.Probability, Src: r}
	return b.Rand()
}

// ChiSquared draws from the chi-squared distribution with
// DegreesOfFreedom.
type ChiSquared struct{}

func (ChiSquared) Name() string { return "chisquared" }

func (ChiSquared) Draw(m metrics.Monitor, r *rand.Rand) float64 {
	c := distuv.ChiSquared{K: m.DegreesOfFreedom, Src: r}
	return c.Rand()
}

var distributions = map[string]Distribution{
	"random":     Uniform{},
	"uniform":    Uniform{},
	"binomial":   Binomial{},
	"chisquared": ChiSquared{},
}

// Lookup returns the named distribution.  An unknown name is a usage
// error; there is no fallback distribution.
func Lookup(name string) (Distribution, error) {
	if d, ok := distributions[name]; ok {
		return d, nil
	}
	return nil, synthtools.NewUsageError("distribution", name, synthtools.SupportedDistributions)
}

// Stream returns the RNG the given metric key draws from for a run seed.
func Stream(seed int64, key string) *rand.Rand {
	return rand.New(rand.NewSource(hashing.StreamSeed(seed, key)))
}

// Sample draws one value per timestamp for every monitor in reg and
// returns them as a table with one column per monitor, in registry order.
func Sample(reg metrics.Registry, dist Distribution, times []time.Time, seed int64) (*frame.Table, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	tbl := frame.New(times)
	for _, m := range reg {
		r := Stream(seed, m.Key)
		values := make([]float64, len(times))
		for i := range values {
			values[i] = dist.Draw(m, r)
		}
		if err := tbl.Add(m.Label, values); err != nil {
			return nil, err
		}
	}

	return tbl, nil
}
