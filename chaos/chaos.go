package chaos

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/metrics"
)

// CheckFactor returns a usage error unless factor is finite and positive.
func CheckFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return synthtools.Invalid("chaos factor",
			strconv.FormatFloat(factor, 'g', -1, 64), "must be a positive finite number")
	}
	return nil
}

// Mask returns one multiplier per timestamp: factor where the profile
// matches and 1.0 everywhere else.
func Mask(times []time.Time, factor float64, profile Profile) ([]float64, error) {
	if err := CheckFactor(factor); err != nil {
		return nil, err
	}

	mask := make([]float64, len(times))
	for i, t := range times {
		mask[i] = 1.0
		if profile.Match(t) {
			mask[i] = factor
		}
	}

	return mask, nil
}

// Matched counts the samples in mask that are not 1.0.
func Matched(mask []float64) int {
	n := 0
	for _, v := range mask {
		if v != 1.0 {
			n++
		}
	}
	return n
}

// Apply multiplies each selected metric column by mask and clamps the
// result into the metric's registered bounds.  selected is a set: each
// metric is scaled once however often it is named.  The returned table is
// a copy; columns not selected are left exactly as they were.
func Apply(selected []string, tbl *frame.Table, mask []float64, reg metrics.Registry) (*frame.Table, error) {
	if len(mask) != tbl.Len() {
		return nil, fmt.Errorf("chaos mask has %d values, table has %d rows", len(mask), tbl.Len())
	}

	out := tbl.Clone()
	done := make(map[string]bool, len(selected))
	for _, name := range selected {
		m, ok := reg.Lookup(name)
		if !ok {
			return nil, synthtools.NewUsageError("chaos class", name, reg.Labels())
		}
		// A metric named twice, by label and by key, is scaled once.
		if done[m.Label] {
			continue
		}
		done[m.Label] = true
		values, ok := out.Column(m.Label)
		if !ok {
			return nil, fmt.Errorf("metric %q has no column in the table", m.Label)
		}
		for i, v := range values {
			values[i] = m.Clamp(v * mask[i])
		}
	}

	return out, nil
}
