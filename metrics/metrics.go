package metrics

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Labels of the monitored metrics as they appear in rendered tables.
const (
	LabelChaos   = "Chaos"
	LabelCPU     = "CPU %"
	LabelCrashes = "Crashes"
	LabelIOPS    = "IOPS"
	LabelIOQ     = "IO Queue"
	LabelMemory  = "Memory %"
	LabelPaging  = "Paging %"
)

// Monitor describes one synthetic metric: how it is named, how it is
// sampled, and the range it is clamped into after chaos is applied.  The
// sampling parameters and the clamp bounds are independent of each other.
type Monitor struct {
	Label string
	Key   string

	// Min and Max are the inclusive clamp bounds.
	Min float64
	Max float64

	// Low and High bound the uniform integer distribution.
	Low  int
	High int

	// Trials and Probability parameterize the binomial distribution.
	Trials      int
	Probability float64

	// DegreesOfFreedom parameterizes the chi-squared distribution.
	DegreesOfFreedom float64
}

// Clamp saturates v into [Min, Max].
func (m Monitor) Clamp(v float64) float64 {
	if v <= m.Min {
		return m.Min
	}
	if v >= m.Max {
		return m.Max
	}
	return v
}

// Validate checks that the parameters of m describe usable distributions.
func (m Monitor) Validate() error {
	switch {
	case m.Label == "":
		return fmt.Errorf("monitor %q: label required", m.Key)
	case m.Key == "":
		return fmt.Errorf("monitor %q: key required", m.Label)
	case math.IsNaN(m.Min) || math.IsNaN(m.Max) || m.Min > m.Max:
		return fmt.Errorf("monitor %q: clamp bounds [%v, %v] are not ordered", m.Label, m.Min, m.Max)
	case m.Low > m.High:
		return fmt.Errorf("monitor %q: uniform bounds [%d, %d] are not ordered", m.Label, m.Low, m.High)
	case m.Trials < 0:
		return fmt.Errorf("monitor %q: binomial trials %d is negative", m.Label, m.Trials)
	case m.Probability < 0 || m.Probability > 1 || math.IsNaN(m.Probability):
		return fmt.Errorf("monitor %q: binomial probability %v outside [0, 1]", m.Label, m.Probability)
	case !(m.DegreesOfFreedom > 0):
		return fmt.Errorf("monitor %q: chi-squared degrees of freedom %v must be positive", m.Label, m.DegreesOfFreedom)
	}
	return nil
}

// Registry is the ordered set of monitors a data set is generated from.
type Registry []Monitor

// Default returns the stock registry of six monitors.
func Default() Registry {
	return Registry{
		{Label: LabelCrashes, Key: "crashes", Min: 0, Max: 2,
			Low: 0, High: 1, Trials: 1, Probability: 0.1, DegreesOfFreedom: 0.1},
		{Label: LabelCPU, Key: "cpu", Min: 2, Max: 100,
			Low: 10, High: 30, Trials: 100, Probability: 0.15, DegreesOfFreedom: 15},
		{Label: LabelMemory, Key: "memory", Min: 5, Max: 100,
			Low: 60, High: 70, Trials: 100, Probability: 0.65, DegreesOfFreedom: 65},
		{Label: LabelPaging, Key: "paging", Min: 0, Max: 100,
			Low: 3, High: 5, Trials: 100, Probability: 0.03, DegreesOfFreedom: 3},
		{Label: LabelIOPS, Key: "iops", Min: 10, Max: 100000,
			Low: 100, High: 900, Trials: 5000, Probability: 0.20, DegreesOfFreedom: 1000},
		{Label: LabelIOQ, Key: "io_queue", Min: 0, Max: 30,
			Low: 0, High: 3, Trials: 10, Probability: 0.05, DegreesOfFreedom: 0.5},
	}
}

// Clone returns a copy of r that may be modified independently.
func (r Registry) Clone() Registry {
	c := make(Registry, len(r))
	copy(c, r)
	return c
}

// Lookup finds a monitor by label or key.  Matching is exact on the label
// and case insensitive on the key.
func (r Registry) Lookup(name string) (Monitor, bool) {
	for _, m := range r {
		if m.Label == name || strings.EqualFold(m.Key, name) {
			return m, true
		}
	}
	return Monitor{}, false
}

// Index returns the position of the monitor with the given label or key,
// or -1.
func (r Registry) Index(name string) int {
	for i, m := range r {
		if m.Label == name || strings.EqualFold(m.Key, name) {
			return i
		}
	}
	return -1
}

// Labels returns the monitor labels in registry order.
func (r Registry) Labels() []string {
	ret := make([]string, 0, len(r))
	for _, m := range r {
		ret = append(ret, m.Label)
	}
	return ret
}

// Keys returns the monitor keys in registry order.
func (r Registry) Keys() []string {
	ret := make([]string, 0, len(r))
	for _, m := range r {
		ret = append(ret, m.Key)
	}
	return ret
}

// Validate checks every monitor and that labels and keys are unique.
func (r Registry) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("registry has no monitors")
	}
	seen := make(map[string]bool)
	for _, m := range r {
		if err := m.Validate(); err != nil {
			return err
		}
		for _, n := range []string{m.Label, strings.ToLower(m.Key)} {
			if seen[n] {
				return fmt.Errorf("monitor name %q used twice", n)
			}
			seen[n] = true
		}
	}
	return nil
}

// LabelToKey takes a table label such as "CPU %" and returns a name that
// is safe to use as a Graphite or Prometheus path element.  Registry keys
// should be preferred, this is for labels with no monitor behind them.
func LabelToKey(label string) string {
	var b strings.Builder
	underscore := false
	for _, c := range strings.ToLower(label) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			underscore = false
		case c == '%':
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteString("pct")
			underscore = false
		default:
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// FilterList returns the labels of the monitors named in filter, which
// may hold labels or keys.  Names that match no monitor are returned as
// the second value.  Registry order is kept and duplicates are dropped.
func FilterList(filter []string, r Registry) ([]string, []string) {
	result := make([]string, 0)
	unknown := make([]string, 0)
	hash := make(map[string]bool)
	for _, v := range filter {
		i := r.Index(v)
		if i < 0 {
			unknown = append(unknown, v)
			continue
		}
		hash[r[i].Label] = true
	}

	for _, m := range r {
		if hash[m.Label] {
			result = append(result, m.Label)
		}
	}

	return result, unknown
}

// FilterRegex returns the labels of the monitors whose label or key match
// the given regex pattern.
func FilterRegex(regex string, r Registry) ([]string, error) {
	re, err := regexp.Compile(regex)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0)

	for _, m := range r {
		if re.MatchString(m.Label) || re.MatchString(m.Key) {
			result = append(result, m.Label)
		}
	}

	return result, nil
}
