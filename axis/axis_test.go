package axis

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-graphite/synthtools"
)

func TestBuild(t *testing.T) {
	for _, c := range []struct{ interval, count int }{
		{5, 12}, {1, 1}, {60, 1440}, {3600, 168},
	} {
		t.Run(fmt.Sprintf("%ds_x%d", c.interval, c.count), func(t *testing.T) {
			ts, err := Default(c.interval, c.count)
			if err != nil {
				t.Fatal(err)
			}
			if len(ts) != c.count {
				t.Fatalf("got %d timestamps, expected %d", len(ts), c.count)
			}
			if !ts[0].Equal(synthtools.Epoch) {
				t.Errorf("first timestamp %v, expected %v", ts[0], synthtools.Epoch)
			}
			for i := 1; i < len(ts); i++ {
				if d := ts[i].Sub(ts[i-1]); d != time.Duration(c.interval)*time.Second {
					t.Fatalf("timestamps %d and %d are %v apart", i-1, i, d)
				}
			}
		})
	}
}

func TestBuildRejectsNonPositive(t *testing.T) {
	for _, c := range []struct{ interval, count int }{
		{0, 12}, {-5, 12}, {5, 0}, {5, -1},
	} {
		ts, err := Default(c.interval, c.count)
		if err == nil || ts != nil {
			t.Errorf("Default(%d, %d) = %v, %v; want usage error", c.interval, c.count, ts, err)
			continue
		}
		if !synthtools.IsUsage(err) {
			t.Errorf("Default(%d, %d) error is not a usage error: %s", c.interval, c.count, err)
		}
	}
}

func TestFromRetention(t *testing.T) {
	for def, want := range map[string][2]int{
		"5s:1m":  {5, 12},
		"5s:12":  {5, 12},
		"1m:1h":  {60, 60},
		"10:360": {10, 360},
	} {
		interval, count, err := FromRetention(def)
		if err != nil {
			t.Errorf("FromRetention(%q): %s", def, err)
			continue
		}
		if interval != want[0] || count != want[1] {
			t.Errorf("FromRetention(%q) = %d, %d; want %d, %d", def, interval, count, want[0], want[1])
		}
	}

	for _, def := range []string{"bogus", "0s:1m", "5s"} {
		if _, _, err := FromRetention(def); err == nil {
			t.Errorf("FromRetention(%q) succeeded", def)
		}
	}
}

func TestParseStart(t *testing.T) {
	ts, err := ParseStart("2025-01-06")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Weekday() != time.Monday {
		t.Errorf("2025-01-06 parsed to a %s", ts.Weekday())
	}

	ts, err = ParseStart("2025-01-06T09:30:00+02:00")
	if err != nil {
		t.Fatal(err)
	}
	if ts.Hour() != 7 || ts.Location() != time.UTC {
		t.Errorf("RFC 3339 start not converted to UTC: %v", ts)
	}

	ts, _ = ParseStart("")
	if !ts.Equal(synthtools.Epoch) {
		t.Errorf("empty start should be the epoch, got %v", ts)
	}

	if _, err := ParseStart("January"); !synthtools.IsUsage(err) {
		t.Errorf("ParseStart accepted garbage: %v", err)
	}
}
