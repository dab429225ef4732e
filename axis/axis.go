// Package axis builds the timestamp index every synthetic data set is
// sampled over.
package axis

import (
	"regexp"
	"strconv"
	"time"

	"github.com/go-graphite/go-whisper"

	"github.com/go-graphite/synthtools"
)

// zeroPrecision matches retention definitions with a zero sized step which
// whisper would divide by.
var zeroPrecision = regexp.MustCompile(`^0+[a-zA-Z]*:`)

// Build returns count timestamps spaced interval seconds apart beginning
// at start.  The sequence is ordered and must not be modified.
func Build(start time.Time, interval, count int) ([]time.Time, error) {
	if interval <= 0 {
		return nil, synthtools.Invalid("interval", strconv.Itoa(interval), "must be a positive number of seconds")
	}
	if count <= 0 {
		return nil, synthtools.Invalid("sample count", strconv.Itoa(count), "must be positive")
	}

	step := time.Duration(interval) * time.Second
	ret := make([]time.Time, count)
	for i := range ret {
		ret[i] = start.Add(time.Duration(i) * step)
	}

	return ret, nil
}

// Default builds the index from the constant epoch.
func Default(interval, count int) ([]time.Time, error) {
	return Build(synthtools.Epoch, interval, count)
}

// FromRetention parses a Graphite retention definition such as "5s:1m"
// or "10s:360" and returns the sampling interval in seconds and the
// number of samples it describes.
func FromRetention(def string) (interval, count int, err error) {
	if zeroPrecision.MatchString(def) {
		return 0, 0, synthtools.Invalid("retention", def, "precision must be positive")
	}
	r, err := whisper.ParseRetentionDef(def)
	if err != nil {
		return 0, 0, synthtools.Invalid("retention", def, err.Error())
	}
	interval, count = r.SecondsPerPoint(), r.NumberOfPoints()
	if interval <= 0 || count <= 0 {
		return 0, 0, synthtools.Invalid("retention", def, "must describe at least one point")
	}

	return interval, count, nil
}

// ParseStart reads a start time as a plain date or an RFC 3339 timestamp.
// The result is always in UTC.  An empty string yields the epoch.
func ParseStart(s string) (time.Time, error) {
	if s == "" {
		return synthtools.Epoch, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, synthtools.Invalid("start", s, "expected YYYY-MM-DD or RFC 3339")
}
