// Package render writes a generated table in one of the supported output
// formats.
package render

import (
	"io"
	"math"
	"strconv"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/metrics"
)

// Options tune the renderings.  The zero value is usable.
type Options struct {
	// Prefix is prepended to Graphite paths and Prometheus metric names.
	Prefix string

	// Keys maps a column label to the metric key used in Graphite paths
	// and Prometheus names.  metrics.LabelToKey is used when nil.
	Keys func(label string) string

	// Title of the chart.
	Title string

	// ChartFormat is png or svg.
	ChartFormat string

	// PickleBatch is the number of points per carbon pickle frame.
	PickleBatch int

	// Color forces highlighting of chaos rows in table output even when
	// not writing to a terminal.
	Color bool
}

func (o Options) key(label string) string {
	if o.Keys != nil {
		return o.Keys(label)
	}
	return metrics.LabelToKey(label)
}

type renderFunc func(w io.Writer, tbl *frame.Table, o Options) error

var renderers = map[string]renderFunc{
	"chart":      renderChart,
	"graph":      renderChart,
	"csv":        renderCSV,
	"graphite":   renderGraphite,
	"json":       renderJSON,
	"pickle":     renderPickle,
	"prometheus": renderPrometheus,
	"table":      renderTable,
}

// Check returns a usage error if mode is not an output format.
func Check(mode string) error {
	if _, ok := renderers[mode]; !ok {
		return synthtools.NewUsageError("output", mode, synthtools.SupportedOutputs)
	}
	return nil
}

// Render writes tbl to w in the given mode.
func Render(mode string, w io.Writer, tbl *frame.Table, o Options) error {
	if err := Check(mode); err != nil {
		return err
	}
	return renderers[mode](w, tbl, o)
}

// formatValue writes v with as many digits as needed to read it back.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatCell writes v for humans: integers as such, anything else with
// two decimals.
func formatCell(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
