package render

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	pickle "github.com/kisielk/og-rek"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/frame"
)

// DefaultPickleBatch is the number of points carried by one pickle frame
// unless Options.PickleBatch says otherwise.
const DefaultPickleBatch = 500

func (o Options) path(label string) string {
	key := o.key(label)
	if o.Prefix == "" {
		return key
	}
	return strings.TrimSuffix(o.Prefix, ".") + "." + key
}

// renderGraphite writes the Graphite plaintext protocol, one line of
// "path value timestamp" per point, one series after the other.
func renderGraphite(w io.Writer, tbl *frame.Table, o Options) error {
	out := bufio.NewWriter(w)
	for _, c := range tbl.Columns {
		path := o.path(c.Name)
		points, _ := synthtools.Points(tbl.Index, c.Values)
		for _, p := range points {
			fmt.Fprintf(out, "%s %s %d\n", path, formatValue(p.Value), p.Time)
		}
	}
	return out.Flush()
}

// renderPickle writes carbon pickle frames: a 4 byte big endian length
// followed by a pickled list of (path, (timestamp, value)) pairs.
func renderPickle(w io.Writer, tbl *frame.Table, o Options) error {
	batch := o.PickleBatch
	if batch <= 0 {
		batch = DefaultPickleBatch
	}

	var list []interface{}
	flush := func() error {
		if len(list) == 0 {
			return nil
		}
		buf := new(bytes.Buffer)
		if err := pickle.NewEncoder(buf).Encode(list); err != nil {
			return err
		}
		header := make([]byte, 4)
		binary.BigEndian.PutUint32(header, uint32(buf.Len()))
		if _, err := w.Write(header); err != nil {
			return err
		}
		if _, err := buf.WriteTo(w); err != nil {
			return err
		}
		list = list[:0]
		return nil
	}

	for _, c := range tbl.Columns {
		path := o.path(c.Name)
		points, _ := synthtools.Points(tbl.Index, c.Values)
		for _, p := range points {
			list = append(list, []interface{}{path, []interface{}{p.Time, p.Value}})
			if len(list) >= batch {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
	return flush()
}

// renderPrometheus writes an OpenMetrics exposition, the format
// "promtool tsdb create-blocks-from openmetrics" backfills from.  Each
// column is one gauge family holding a single series whose samples are
// the rows in increasing timestamp order.  The stream ends with "# EOF".
func renderPrometheus(w io.Writer, tbl *frame.Table, o Options) error {
	prefix := strings.TrimSuffix(o.Prefix, "_")
	prefix = strings.ReplaceAll(prefix, ".", "_")
	for _, c := range tbl.Columns {
		name := o.key(c.Name)
		if prefix != "" {
			name = prefix + "_" + name
		}
		mf := &dto.MetricFamily{
			Name: proto.String(name),
			Help: proto.String("Synthetic " + c.Name),
			Type: dto.MetricType_GAUGE.Enum(),
		}
		for i, ts := range tbl.Index {
			mf.Metric = append(mf.Metric, &dto.Metric{
				Gauge:       &dto.Gauge{Value: proto.Float64(c.Values[i])},
				TimestampMs: proto.Int64(ts.UnixMilli()),
			})
		}
		if _, err := expfmt.MetricFamilyToOpenMetrics(w, mf); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	_, err := expfmt.FinalizeOpenMetrics(w)
	return err
}
