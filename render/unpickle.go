package render

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	pickle "github.com/kisielk/og-rek"
	"github.com/klauspost/compress/zstd"

	"github.com/go-graphite/synthtools"
)

// MaxPickleSize is the largest pickle frame ReadPickle accepts.
const MaxPickleSize = 1 * 1024 * 1024

// Point is one data point read back from a carbon pickle stream.
type Point struct {
	Path  string
	Time  int64
	Value float64
}

func (p Point) String() string {
	return fmt.Sprintf("%s %s %d", p.Path, formatValue(p.Value), p.Time)
}

// NewDecoder undoes the compression applied by NewEncoder.
func NewDecoder(r io.Reader, codec string) (io.ReadCloser, error) {
	switch codec {
	case "", "none":
		return io.NopCloser(r), nil
	case "snappy":
		return io.NopCloser(snappy.NewReader(r)), nil
	case "zstd":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}
	return nil, synthtools.NewUsageError("compression", codec, synthtools.SupportedCompressions)
}

// ReadPickle decodes carbon pickle frames from r until EOF and hands each
// data point to fn.  Entries that are not (path, (timestamp, value)) are
// an error.
func ReadPickle(r io.Reader, fn func(Point) error) error {
	sizeBuf := make([]byte, 4)
	for frame := 0; ; frame++ {
		// Pickle is preceded by an unsigned long integer of 4 bytes (!L)
		if _, err := io.ReadFull(r, sizeBuf); err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("frame %d: reading header: %w", frame, err)
		}
		size := int(binary.BigEndian.Uint32(sizeBuf))
		if size > MaxPickleSize {
			return fmt.Errorf("frame %d: %d bytes is too large", frame, size)
		}

		dataBuf := make([]byte, size)
		if _, err := io.ReadFull(r, dataBuf); err != nil {
			return fmt.Errorf("frame %d: pickle data not correct size: %w", frame, err)
		}
		object, err := pickle.NewDecoder(bytes.NewBuffer(dataBuf)).Decode()
		if err != nil {
			return fmt.Errorf("frame %d: decoding pickle: %w", frame, err)
		}

		points, err := pointsOf(object)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		for _, p := range points {
			if err := fn(p); err != nil {
				return err
			}
		}
	}
}

func pointsOf(object interface{}) ([]Point, error) {
	// Is this a slice -- it should be
	slice, ok := object.([]interface{})
	if !ok {
		return nil, fmt.Errorf("pickle object is %T, not a list", object)
	}

	points := make([]Point, 0, len(slice))
	for i, v := range slice {
		metric, ok := v.([]interface{})
		if !ok || len(metric) != 2 {
			return nil, fmt.Errorf("entry %d is not a (path, datapoint) pair", i)
		}
		path, ok := metric[0].(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: path is %T", i, metric[0])
		}
		datatuple, ok := metric[1].([]interface{})
		if !ok || len(datatuple) != 2 {
			return nil, fmt.Errorf("entry %d: (timestamp, value) not found", i)
		}

		ts, err := number(datatuple[0])
		if err != nil {
			return nil, fmt.Errorf("entry %d: timestamp: %w", i, err)
		}
		value, err := number(datatuple[1])
		if err != nil {
			return nil, fmt.Errorf("entry %d: value: %w", i, err)
		}
		points = append(points, Point{Path: path, Time: int64(ts), Value: value})
	}

	return points, nil
}

func number(v interface{}) (float64, error) {
	switch t := v.(type) {
	case int64:
		return float64(t), nil
	case float64:
		return t, nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()
		return f, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}
