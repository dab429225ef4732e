package synthtools

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	// Synthtools suite version
	Version = "0.3.0"
)

// Epoch is the first timestamp of every generated data set unless the
// caller picks another start.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// SupportedDistributions is the string identifiers of the sampling
// distributions.  This slice must be sorted.
var SupportedDistributions = []string{
	"binomial",
	"chisquared",
	"random",
}

// SupportedOutputs is the string identifiers of the output formats.
// This slice must be sorted.
var SupportedOutputs = []string{
	"chart",
	"csv",
	"graphite",
	"json",
	"pickle",
	"prometheus",
	"table",
}

// SupportedCompressions is the string identifiers of the stream encodings
// that may wrap any output format.  This slice must be sorted.
var SupportedCompressions = []string{
	"none",
	"snappy",
	"zstd",
}

// Supported reports if value is found in the sorted choices slice.
func Supported(choices []string, value string) bool {
	i := sort.SearchStrings(choices, value)
	return i < len(choices) && choices[i] == value
}

// UsageError reports a value the user picked that is not one of the
// accepted choices.  No data is produced when a UsageError is returned.
type UsageError struct {
	Kind    string
	Value   string
	Choices []string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Value, e.Reason)
	}
	if len(e.Choices) > 0 {
		return fmt.Sprintf("unknown %s %q, choose one of %v", e.Kind, e.Value, e.Choices)
	}
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

// NewUsageError builds a UsageError for a value outside of choices.
func NewUsageError(kind, value string, choices []string) error {
	return &UsageError{Kind: kind, Value: value, Choices: choices}
}

// Invalid builds a UsageError with a free form reason.
func Invalid(kind, value, reason string) error {
	return &UsageError{Kind: kind, Value: value, Reason: reason}
}

// IsUsage returns true if err, or anything it wraps, is a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// RunInfo identifies a single generated data set in logs and in
// renderings that carry metadata.
type RunInfo struct {
	ID           string
	Seed         int64
	Distribution string
	Profile      string
	Factor       float64
}

func (r *RunInfo) String() string {
	blob, err := json.Marshal(r)
	if err != nil {
		return err.Error()
	}
	return string(blob)
}
