package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/go-graphite/synthtools/chaos"
	"github.com/go-graphite/synthtools/metrics"
)

func init() {
	usage := "[options]"
	short := "List the monitored metrics."
	long := `Dump to STDOUT the metrics every data set holds, in column order, with
their keys, clamp bounds and sampling parameters.  Any of the label or
the key may be given to the -class flag of "generate".  Monitors added
or changed in the -config file are included.`

	c := NewCommand(metricsCommand, "metrics", usage, short, long)
	SetupCommon(c)
	SetupJSON(c)

	usage = "[options]"
	short = "List the chaos profiles."
	long = `Dump to STDOUT the chaos profiles that may be given to the -profile
flag of "generate", including windows defined in the -config file.`

	c = NewCommand(profilesCommand, "profiles", usage, short, long)
	SetupCommon(c)
	SetupJSON(c)
}

type monitorJSON struct {
	Label            string  `json:"label"`
	Key              string  `json:"key"`
	Min              float64 `json:"min"`
	Max              float64 `json:"max"`
	Low              int     `json:"low"`
	High             int     `json:"high"`
	Trials           int     `json:"trials"`
	Probability      float64 `json:"probability"`
	DegreesOfFreedom float64 `json:"dof"`
}

func printMetrics(w io.Writer, reg metrics.Registry, asJSON bool) error {
	if asJSON {
		list := make([]monitorJSON, 0, len(reg))
		for _, m := range reg {
			list = append(list, monitorJSON(m))
		}
		blob, err := json.MarshalIndent(list, "", "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", blob)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Label\tKey\tMin\tMax\tUniform\tBinomial\tChi-squared")
	for _, m := range reg {
		fmt.Fprintf(tw, "%s\t%s\t%v\t%v\t%d-%d\tn=%d p=%v\tk=%v\n",
			m.Label, m.Key, m.Min, m.Max, m.Low, m.High,
			m.Trials, m.Probability, m.DegreesOfFreedom)
	}
	return tw.Flush()
}

func printProfiles(w io.Writer, ps chaos.Profiles, asJSON bool) error {
	desc := make(map[string]string, len(ps))
	for _, name := range ps.Names() {
		if s, ok := ps[name].(fmt.Stringer); ok {
			desc[name] = s.String()
		} else {
			desc[name] = "every sample"
		}
	}

	if asJSON {
		blob, err := json.MarshalIndent(desc, "", "\t")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", blob)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range ps.Names() {
		fmt.Fprintf(tw, "%s\t%s\n", name, desc[name])
	}
	return tw.Flush()
}

// metricsCommand runs this subcommand.
func metricsCommand(c Command) int {
	env, err := LoadEnvironment()
	if err != nil {
		return exitCode(err)
	}
	return exitCode(printMetrics(os.Stdout, env.Registry, JSONOutput))
}

// profilesCommand runs this subcommand.
func profilesCommand(c Command) int {
	env, err := LoadEnvironment()
	if err != nil {
		return exitCode(err)
	}
	return exitCode(printProfiles(os.Stdout, env.Profiles, JSONOutput))
}
