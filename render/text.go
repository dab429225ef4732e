package render

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/go-graphite/synthtools/frame"
	"github.com/go-graphite/synthtools/metrics"
)

// Timestamp layouts of the text formats.
const (
	TableTime = "2006-01-02 15:04:05"
	JSONTime  = time.RFC3339
)

// renderTable prints an aligned table.  Rows inside the chaos window are
// highlighted when color output is possible.
func renderTable(w io.Writer, tbl *frame.Table, o Options) error {
	buf := new(bytes.Buffer)
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Timestamp\t%s\n", strings.Join(tbl.Names(), "\t"))
	for i, ts := range tbl.Index {
		cells := make([]string, len(tbl.Columns))
		for j, v := range tbl.Row(i) {
			cells[j] = formatCell(v)
		}
		fmt.Fprintf(tw, "%s\t%s\n", ts.Format(TableTime), strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	hl := color.New(color.FgRed, color.Bold)
	if o.Color {
		hl.EnableColor()
	}
	mask, _ := tbl.Column(metrics.LabelChaos)

	out := bufio.NewWriter(w)
	scanner := bufio.NewScanner(buf)
	for row := -1; scanner.Scan(); row++ {
		line := strings.TrimRight(scanner.Text(), " ")
		if row >= 0 && row < len(mask) && mask[row] != 1.0 {
			hl.Fprintln(out, line)
		} else {
			fmt.Fprintln(out, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return out.Flush()
}

// renderCSV writes a header of "Timestamp" and the column names followed
// by one record per row.
func renderCSV(w io.Writer, tbl *frame.Table, o Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Timestamp"}, tbl.Names()...)); err != nil {
		return err
	}
	for i, ts := range tbl.Index {
		record := make([]string, 0, len(tbl.Columns)+1)
		record = append(record, ts.Format(TableTime))
		for _, v := range tbl.Row(i) {
			record = append(record, formatValue(v))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// renderJSON writes one object keyed by timestamp whose values map column
// names to numbers, keeping row and column order.  Values that JSON can
// not represent are written as null.
func renderJSON(w io.Writer, tbl *frame.Table, o Options) error {
	names := make([][]byte, len(tbl.Columns))
	for j, n := range tbl.Names() {
		blob, err := json.Marshal(n)
		if err != nil {
			return err
		}
		names[j] = blob
	}

	out := bufio.NewWriter(w)
	out.WriteByte('{')
	for i, ts := range tbl.Index {
		if i > 0 {
			out.WriteByte(',')
		}
		fmt.Fprintf(out, "%q:{", ts.UTC().Format(JSONTime))
		for j, v := range tbl.Row(i) {
			if j > 0 {
				out.WriteByte(',')
			}
			out.Write(names[j])
			out.WriteByte(':')
			if math.IsNaN(v) || math.IsInf(v, 0) {
				out.WriteString("null")
			} else {
				out.WriteString(formatValue(v))
			}
		}
		out.WriteByte('}')
	}
	out.WriteString("}\n")
	return out.Flush()
}
