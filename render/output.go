package render

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/go-graphite/synthtools"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NewEncoder wraps w with the named compression codec.  Closing the
// returned writer flushes the codec but does not close w.
func NewEncoder(w io.Writer, codec string) (io.WriteCloser, error) {
	switch codec {
	case "", "none":
		return nopCloser{w}, nil
	case "snappy":
		return snappy.NewBufferedWriter(w), nil
	case "zstd":
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, err
		}
		return enc, nil
	}
	return nil, synthtools.NewUsageError("compression", codec, synthtools.SupportedCompressions)
}

// Create opens the output destination.  An empty path or "-" is standard
// output.  A file is truncated only after an exclusive flock on it has
// been obtained, so two runs never interleave their output.  The lock is
// released when the file is closed.
func Create(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	if err := tryExclusive(file); err != nil {
		file.Close()
		if isResourceUnavailable(err) {
			return nil, fmt.Errorf("%s is locked by another process", path)
		}
		return nil, fmt.Errorf("locking %s: %w", path, err)
	}
	if err := file.Truncate(0); err != nil {
		file.Close()
		return nil, err
	}

	return file, nil
}

// tryExclusive takes an exclusive lock on file without blocking.
func tryExclusive(file *os.File) error {
	return syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// isResourceUnavailable reports whether err from tryExclusive means the
// lock is held elsewhere.
func isResourceUnavailable(err error) bool {
	if errno, ok := err.(syscall.Errno); ok {
		return errno == syscall.EAGAIN
	}
	return false
}
