package main

import (
	"fmt"
	"runtime"

	"github.com/go-graphite/synthtools"
)

func init() {
	usage := ""
	short := "Display the version of synthtools."
	long := `Print the synthtools version and the Go runtime it was built with.`

	NewCommand(versionCommand, "version", usage, short, long)
}

func versionCommand(c Command) int {
	fmt.Printf("synth %s (%s %s/%s)\n", synthtools.Version,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return 0
}
