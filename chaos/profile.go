// Package chaos decides which samples of a data set are anomalous and
// scales the chosen metrics at those samples.
package chaos

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-graphite/synthtools"
)

// Names of the built-in profiles.
const (
	ProfileAll         = "All"
	ProfileMonday9to10 = "Monday9to10"
)

// Profile is a per-sample predicate selecting the chaotic samples.
type Profile interface {
	Name() string
	Match(t time.Time) bool
}

type all struct{}

func (all) Name() string         { return ProfileAll }
func (all) Match(time.Time) bool { return true }

// Window matches samples that fall on one of Weekdays with an hour of
// day in [StartHour, EndHour).  Times are matched in UTC.
type Window struct {
	Label     string
	Weekdays  []time.Weekday
	StartHour int
	EndHour   int
}

func (w Window) Name() string { return w.Label }

func (w Window) Match(t time.Time) bool {
	t = t.UTC()
	h := t.Hour()
	if h < w.StartHour || h >= w.EndHour {
		return false
	}
	for _, d := range w.Weekdays {
		if t.Weekday() == d {
			return true
		}
	}
	return false
}

// Validate checks the hour range and weekday list of w.
func (w Window) Validate() error {
	switch {
	case w.Label == "":
		return fmt.Errorf("window profile: name required")
	case len(w.Weekdays) == 0:
		return fmt.Errorf("window profile %s: at least one weekday required", w.Label)
	case w.StartHour < 0 || w.EndHour > 24 || w.StartHour >= w.EndHour:
		return fmt.Errorf("window profile %s: hours [%d, %d) are not a range within a day",
			w.Label, w.StartHour, w.EndHour)
	}
	return nil
}

func (w Window) String() string {
	days := make([]string, len(w.Weekdays))
	for i, d := range w.Weekdays {
		days[i] = d.String()[:3]
	}
	return fmt.Sprintf("%s %02d:00-%02d:00 UTC", strings.Join(days, ","), w.StartHour, w.EndHour)
}

// ParseWeekday accepts full or three letter English weekday names in any
// case.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// Profiles is a set of profiles addressed by name.
type Profiles map[string]Profile

// Builtin returns the stock profiles.
func Builtin() Profiles {
	return Profiles{
		ProfileAll: all{},
		ProfileMonday9to10: Window{
			Label:     ProfileMonday9to10,
			Weekdays:  []time.Weekday{time.Monday},
			StartHour: 9,
			EndHour:   10,
		},
	}
}

// Add registers p.  Built-in names can not be replaced.
func (ps Profiles) Add(p Profile) error {
	if _, ok := ps[p.Name()]; ok {
		return fmt.Errorf("chaos profile %s already defined", p.Name())
	}
	ps[p.Name()] = p
	return nil
}

// Names returns the sorted profile names.
func (ps Profiles) Names() []string {
	ret := make([]string, 0, len(ps))
	for n := range ps {
		ret = append(ret, n)
	}
	sort.Strings(ret)
	return ret
}

// Lookup returns the named profile or a usage error.
func (ps Profiles) Lookup(name string) (Profile, error) {
	if p, ok := ps[name]; ok {
		return p, nil
	}
	return nil, synthtools.NewUsageError("chaos profile", name, ps.Names())
}
