package synthtools

import (
	"math"
	"time"

	"github.com/go-graphite/go-whisper"
)

// Points pairs each timestamp with its value and returns the valid data
// points as whisper points.  NaN values are skipped, as whisper treats
// them as holes.  The second value returned is the number of points
// examined.
func Points(times []time.Time, values []float64) ([]*whisper.TimeSeriesPoint, int) {
	points := make([]*whisper.TimeSeriesPoint, 0, len(values))
	count := 0

	for i, v := range values {
		if i >= len(times) {
			break
		}
		count++
		if math.IsNaN(v) {
			continue
		}
		points = append(points, &whisper.TimeSeriesPoint{
			Time:  int(times[i].Unix()),
			Value: v,
		})
	}

	return points, count
}
