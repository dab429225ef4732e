package chaos

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/axis"
	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/metrics"
)

// weekOfHours covers every hour of the first full week of 2025, which
// starts on Monday January 6th.
func weekOfHours(t *testing.T) []time.Time {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	ts, err := axis.Build(start, 3600, 7*24)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestMaskAll(t *testing.T) {
	ts, _ := axis.Default(5, 12)
	mask, err := Mask(ts, 2.5, Builtin()[ProfileAll])
	if err != nil {
		t.Fatal(err)
	}
	if len(mask) != len(ts) {
		t.Fatalf("mask has %d values for %d timestamps", len(mask), len(ts))
	}
	for i, v := range mask {
		if v != 2.5 {
			t.Errorf("mask[%d] = %v; want 2.5", i, v)
		}
	}
}

func TestMaskMonday9to10(t *testing.T) {
	ts := weekOfHours(t)
	p, err := Builtin().Lookup(ProfileMonday9to10)
	if err != nil {
		t.Fatal(err)
	}
	mask, err := Mask(ts, 3, p)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range mask {
		want := 1.0
		if ts[i].Weekday() == time.Monday && ts[i].Hour() >= 9 && ts[i].Hour() < 10 {
			want = 3
		}
		if v != want {
			t.Errorf("mask at %v = %v; want %v", ts[i], v, want)
		}
	}
	if n := Matched(mask); n != 1 {
		t.Errorf("%d hourly samples matched, expected 1", n)
	}
}

func TestMaskDefaultRunNeverMatchesMonday(t *testing.T) {
	// The epoch is a Wednesday.
	ts, _ := axis.Default(5, 12)
	mask, _ := Mask(ts, 4, Builtin()[ProfileMonday9to10])
	if Matched(mask) != 0 {
		t.Errorf("Monday profile matched samples on a Wednesday: %v", mask)
	}
}

func TestMaskRejectsBadFactor(t *testing.T) {
	ts, _ := axis.Default(5, 12)
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Mask(ts, f, Builtin()[ProfileAll]); !synthtools.IsUsage(err) {
			t.Errorf("Mask accepted factor %v: %v", f, err)
		}
	}
}

func TestWindow(t *testing.T) {
	w := Window{
		Label:     "BusinessHours",
		Weekdays:  []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		StartHour: 9,
		EndHour:   17,
	}
	if err := w.Validate(); err != nil {
		t.Fatal(err)
	}
	mask, _ := Mask(weekOfHours(t), 2, w)
	if n := Matched(mask); n != 5*8 {
		t.Errorf("business hours matched %d samples, expected 40", n)
	}
	if w.String() != "Mon,Tue,Wed,Thu,Fri 09:00-17:00 UTC" {
		t.Errorf("String() = %q", w.String())
	}

	for i, bad := range []Window{
		{Label: "", Weekdays: []time.Weekday{time.Monday}, StartHour: 1, EndHour: 2},
		{Label: "x", StartHour: 1, EndHour: 2},
		{Label: "x", Weekdays: []time.Weekday{time.Monday}, StartHour: 5, EndHour: 5},
		{Label: "x", Weekdays: []time.Weekday{time.Monday}, StartHour: 20, EndHour: 25},
	} {
		if bad.Validate() == nil {
			t.Errorf("case_%d: invalid window validated", i)
		}
	}
}

func TestParseWeekday(t *testing.T) {
	for s, want := range map[string]time.Weekday{
		"Monday": time.Monday, "mon": time.Monday, "SUN": time.Sunday, " friday ": time.Friday,
	} {
		d, err := ParseWeekday(s)
		if err != nil || d != want {
			t.Errorf("ParseWeekday(%q) = %v, %v; want %v", s, d, err, want)
		}
	}
	if _, err := ParseWeekday("mo"); err == nil {
		t.Errorf("ParseWeekday accepted a two letter day")
	}
}

func TestProfiles(t *testing.T) {
	ps := Builtin()
	if !reflect.DeepEqual(ps.Names(), []string{ProfileAll, ProfileMonday9to10}) {
		t.Errorf("Names() = %v", ps.Names())
	}
	if _, err := ps.Lookup("Friday"); !synthtools.IsUsage(err) {
		t.Errorf("Lookup of unknown profile: %v", err)
	}
	if err := ps.Add(Window{Label: ProfileAll}); err == nil {
		t.Errorf("built-in profile was replaced")
	}
}

func rawTable(t *testing.T, reg metrics.Registry) *frame.Table {
	ts, _ := axis.Default(5, 12)
	tbl := frame.New(ts)
	for j, m := range reg {
		values := make([]float64, len(ts))
		for i := range values {
			values[i] = float64(10*(i+1) + j)
		}
		if err := tbl.Add(m.Label, values); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func TestApplyExample(t *testing.T) {
	reg := metrics.Default()
	raw := rawTable(t, reg)
	ts, _ := axis.Default(5, 12)
	mask, _ := Mask(ts, 2.0, Builtin()[ProfileAll])

	out, err := Apply([]string{metrics.LabelCPU}, raw, mask, reg)
	if err != nil {
		t.Fatal(err)
	}

	rawCPU, _ := raw.Column(metrics.LabelCPU)
	cpu, _ := out.Column(metrics.LabelCPU)
	for i := range cpu {
		want := math.Min(math.Max(rawCPU[i]*2, 2), 100)
		if cpu[i] != want {
			t.Errorf("CPU[%d] = %v; want %v", i, cpu[i], want)
		}
	}

	for _, name := range reg.Labels() {
		if name == metrics.LabelCPU {
			continue
		}
		before, _ := raw.Column(name)
		after, _ := out.Column(name)
		if !reflect.DeepEqual(before, after) {
			t.Errorf("unselected column %s changed: %v -> %v", name, before, after)
		}
	}
}

func TestApplyClampsIntoBounds(t *testing.T) {
	reg := metrics.Default()
	raw := rawTable(t, reg)
	ts, _ := axis.Default(5, 12)

	for _, factor := range []float64{0.001, 0.5, 3, 1000} {
		t.Run(fmt.Sprintf("factor_%v", factor), func(t *testing.T) {
			mask, _ := Mask(ts, factor, Builtin()[ProfileAll])
			out, err := Apply(reg.Labels(), raw, mask, reg)
			if err != nil {
				t.Fatal(err)
			}
			for _, m := range reg {
				values, _ := out.Column(m.Label)
				for i, v := range values {
					if v < m.Min || v > m.Max {
						t.Errorf("%s[%d] = %v outside [%v, %v]", m.Label, i, v, m.Min, m.Max)
					}
				}
			}
		})
	}
}

func TestApplyOrderIndependent(t *testing.T) {
	reg := metrics.Default()
	raw := rawTable(t, reg)
	ts, _ := axis.Default(5, 12)
	mask, _ := Mask(ts, 7, Builtin()[ProfileAll])

	a, _ := Apply([]string{metrics.LabelIOPS, metrics.LabelCPU}, raw, mask, reg)
	b, _ := Apply([]string{metrics.LabelCPU, metrics.LabelIOPS}, raw, mask, reg)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("processing order changed the result")
	}
}

func TestApplyErrors(t *testing.T) {
	reg := metrics.Default()
	raw := rawTable(t, reg)

	if _, err := Apply([]string{metrics.LabelCPU}, raw, []float64{1, 2}, reg); err == nil {
		t.Errorf("misaligned mask accepted")
	}

	ts, _ := axis.Default(5, 12)
	mask, _ := Mask(ts, 2, Builtin()[ProfileAll])
	if _, err := Apply([]string{"Disk %"}, raw, mask, reg); !synthtools.IsUsage(err) {
		t.Errorf("unknown metric: %v", err)
	}
}

func TestApplyNamedTwice(t *testing.T) {
	reg := metrics.Default()
	raw := rawTable(t, reg)
	ts, _ := axis.Default(5, 12)
	mask, _ := Mask(ts, 2, Builtin()[ProfileAll])

	once, err := Apply([]string{metrics.LabelCPU}, raw, mask, reg)
	if err != nil {
		t.Fatal(err)
	}
	for _, selected := range [][]string{
		{metrics.LabelCPU, "cpu"},
		{"cpu", "CPU"},
		{metrics.LabelCPU, metrics.LabelCPU},
	} {
		twice, err := Apply(selected, raw, mask, reg)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(once, twice) {
			rawCPU, _ := raw.Column(metrics.LabelCPU)
			cpu, _ := twice.Column(metrics.LabelCPU)
			t.Errorf("%q scaled CPU more than once: %v -> %v", selected, rawCPU[0], cpu[0])
		}
	}
}

func TestCheckFactor(t *testing.T) {
	for _, f := range []float64{0.001, 1, 2, 1e6} {
		if err := CheckFactor(f); err != nil {
			t.Errorf("CheckFactor(%v) = %v", f, err)
		}
	}
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if err := CheckFactor(f); !synthtools.IsUsage(err) {
			t.Errorf("CheckFactor(%v) = %v; want usage error", f, err)
		}
	}
}
