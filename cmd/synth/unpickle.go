package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/go-graphite/synthtools"
	"github.com/go-graphite/synthtools/render"
)

var unpickleCompress string

func init() {
	usage := "[options] [file]"
	short := "Decode carbon pickle output to plaintext."
	long := `Read the carbon pickle frames written by "generate -o pickle" from the
given file or STDIN and dump them to STDOUT in the Graphite plaintext
protocol, one "path value timestamp" line per data point.  Use -compress
when the pickle stream was written with compression.`

	c := NewCommand(unpickleCommand, "unpickle", usage, short, long)
	SetupCommon(c)
	c.Flag.StringVar(&unpickleCompress, "compress", "none",
		fmt.Sprintf("Compression of the input: %v", synthtools.SupportedCompressions))
}

func unpickle(r io.Reader, w io.Writer, codec string) (int, error) {
	dec, err := render.NewDecoder(r, codec)
	if err != nil {
		return 0, err
	}
	defer dec.Close()

	out := bufio.NewWriter(w)
	count := 0
	err = render.ReadPickle(dec, func(p render.Point) error {
		count++
		_, err := fmt.Fprintln(out, p.String())
		return err
	})
	if err != nil {
		return count, err
	}
	return count, out.Flush()
}

// unpickleCommand runs this subcommand.
func unpickleCommand(c Command) int {
	var in io.Reader = os.Stdin
	switch c.Flag.NArg() {
	case 0:
	case 1:
		fd, err := os.Open(c.Flag.Arg(0))
		if err != nil {
			return exitCode(err)
		}
		defer fd.Close()
		in = fd
	default:
		log.Errorf("unpickle takes at most one file")
		return 2
	}

	count, err := unpickle(in, os.Stdout, unpickleCompress)
	log.Debugf("Decoded %d data points", count)
	return exitCode(err)
}
