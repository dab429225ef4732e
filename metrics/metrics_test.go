package metrics

import (
	"reflect"
	"testing"
)

var testKeys = map[string]string{
	"CPU %":        "cpu_pct",
	"IO Queue":     "io_queue",
	"Memory %":     "memory_pct",
	"Chaos":        "chaos",
	"  odd--Name ": "odd_name",
}

func TestLabelToKey(t *testing.T) {
	for label, key := range testKeys {
		if got := LabelToKey(label); got != key {
			t.Errorf("LabelToKey returned %q for %q, rather than %q", got, label, key)
		}
	}
}

func TestDefaultValid(t *testing.T) {
	r := Default()
	if err := r.Validate(); err != nil {
		t.Fatalf("Default registry is invalid: %s", err)
	}
	if len(r) != 6 {
		t.Errorf("Default registry has %d monitors, expected 6", len(r))
	}
	want := []string{LabelCrashes, LabelCPU, LabelMemory, LabelPaging, LabelIOPS, LabelIOQ}
	if !reflect.DeepEqual(r.Labels(), want) {
		t.Errorf("Labels() = %v; want %v", r.Labels(), want)
	}
}

func TestClampBoundsIndependentOfSampling(t *testing.T) {
	cpu, ok := Default().Lookup(LabelCPU)
	if !ok {
		t.Fatalf("CPU %% not found")
	}
	if cpu.Min != 2 || cpu.Max != 100 {
		t.Errorf("CPU clamp bounds are [%v, %v], expected [2, 100]", cpu.Min, cpu.Max)
	}
	if cpu.Low != 10 || cpu.High != 30 {
		t.Errorf("CPU uniform bounds are [%d, %d], expected [10, 30]", cpu.Low, cpu.High)
	}

	iops, _ := Default().Lookup("iops")
	if float64(iops.Trials) == iops.Max {
		t.Errorf("IOPS binomial trials should not double as the clamp bound")
	}
}

func TestClamp(t *testing.T) {
	m := Monitor{Min: 2, Max: 100}
	for i, c := range []struct{ in, out float64 }{
		{-5, 2}, {2, 2}, {50, 50}, {100, 100}, {250, 100},
	} {
		if got := m.Clamp(c.in); got != c.out {
			t.Errorf("case_%d: Clamp(%v) = %v; want %v", i, c.in, got, c.out)
		}
	}
}

func TestLookup(t *testing.T) {
	r := Default()
	for _, name := range []string{"IO Queue", "io_queue", "IO_QUEUE"} {
		m, ok := r.Lookup(name)
		if !ok || m.Label != LabelIOQ {
			t.Errorf("Lookup(%q) = %v, %v", name, m.Label, ok)
		}
	}
	if _, ok := r.Lookup("io queue"); ok {
		t.Errorf("labels should match exactly")
	}
	if r.Index("nope") != -1 {
		t.Errorf("Index of unknown monitor should be -1")
	}
}

func TestValidate(t *testing.T) {
	for i, c := range []struct {
		mutate func(m *Monitor)
		ok     bool
	}{
		{func(m *Monitor) {}, true},
		{func(m *Monitor) { m.Min, m.Max = 10, 1 }, false},
		{func(m *Monitor) { m.Low, m.High = 5, 1 }, false},
		{func(m *Monitor) { m.Trials = -1 }, false},
		{func(m *Monitor) { m.Probability = 1.5 }, false},
		{func(m *Monitor) { m.DegreesOfFreedom = 0 }, false},
		{func(m *Monitor) { m.Key = "" }, false},
	} {
		r := Default()
		c.mutate(&r[1])
		err := r.Validate()
		if (err == nil) != c.ok {
			t.Errorf("case_%d: Validate() = %v; want ok=%v", i, err, c.ok)
		}
	}

	dup := Default()
	dup[2].Key = "CPU"
	if err := dup.Validate(); err == nil {
		t.Errorf("duplicate keys should not validate")
	}
}

func TestFilterList(t *testing.T) {
	r := Default()
	got, unknown := FilterList([]string{"iops", "CPU %", "cpu", "bogus"}, r)
	want := []string{LabelCPU, LabelIOPS}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterList = %v; want %v", got, want)
	}
	if !reflect.DeepEqual(unknown, []string{"bogus"}) {
		t.Errorf("FilterList unknown = %v; want [bogus]", unknown)
	}
}

func TestFilterRegex(t *testing.T) {
	got, err := FilterRegex("%$", Default())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{LabelCPU, LabelMemory, LabelPaging}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FilterRegex = %v; want %v", got, want)
	}

	if _, err := FilterRegex("(", Default()); err == nil {
		t.Errorf("FilterRegex accepted a broken expression")
	}
}
