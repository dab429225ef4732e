package render

import (
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/frame"
)

// Chart dimensions in pixels.
const (
	ChartWidth  = 1280
	ChartHeight = 640
)

// Columns whose values exceed this are plotted against the right hand axis
// so they do not flatten the percentages.
const secondaryAxisAbove = 100.0

var chartFormats = []string{"png", "svg"}

func renderChart(w io.Writer, tbl *frame.Table, o Options) error {
	var provider chart.RendererProvider
	switch o.ChartFormat {
	case "", "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return synthtools.NewUsageError("chart format", o.ChartFormat, chartFormats)
	}
	if tbl.Len() < 2 {
		return errors.New("a chart needs at least two samples")
	}

	title := o.Title
	if title == "" {
		title = "Synthetic Data"
	}

	series := make([]chart.Series, 0, len(tbl.Columns))
	for _, c := range tbl.Columns {
		ts := chart.TimeSeries{
			Name:    c.Name,
			XValues: tbl.Index,
			YValues: c.Values,
		}
		for _, v := range c.Values {
			if v > secondaryAxisAbove {
				ts.YAxis = chart.YAxisSecondary
				break
			}
		}
		series = append(series, ts)
	}

	graph := chart.Chart{
		Title:  title,
		Width:  ChartWidth,
		Height: ChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat("01-02 15:04:05"),
		},
		YAxis:  chart.YAxis{Name: "Value"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	return graph.Render(provider, w)
}
