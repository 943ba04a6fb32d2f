package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/carbocation/runningvariance"

	"github.com/broadcyto/cytodiff/cyto"
	"github.com/broadcyto/cytodiff/fcs"
)

func ProcessFCS(r io.ReadSeeker, channel string, bins int) error {
	f, err := fcs.Read(r)
	if err != nil {
		return err
	}

	fmt.Fprintln(STDOUT, f.Version, "|", len(f.Params), "parameters |", len(f.Data), "events")
	fmt.Fprintln(STDOUT)

	keys := make([]string, 0, len(f.Keywords))
	for k := range f.Keywords {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(STDOUT, "%s\t%s\n", k, f.Keywords[k])
	}
	fmt.Fprintln(STDOUT)

	sample, err := cyto.NewSample("fcsdump", f)
	if err != nil {
		return err
	}

	fmt.Fprintln(STDOUT, "Instrument:", sample.Source)
	fmt.Fprintf(STDOUT, "%-16s%-24s%-24s%-12s%-12s\n", "name", "desc", "display", "mean", "std")
	for i, c := range sample.Channels {
		rs := runningvariance.NewRunningStat()
		for _, row := range sample.X {
			rs.Push(row[i])
		}
		fmt.Fprintf(STDOUT, "%-16s%-24s%-24s%-12.4g%-12.4g\n", c.Name, c.Desc, c.Display, rs.Mean(), rs.StandardDeviation())
	}

	if channel == "" {
		return nil
	}

	idx := sample.ChannelIndex(channel)
	if idx < 0 {
		return pfx.Err(fmt.Errorf("no channel named %q in this file", channel))
	}

	fmt.Fprintln(STDOUT)
	fmt.Fprintln(STDOUT, "Histogram of", channel)
	hist := histogram.Hist(bins, sample.Column(idx))

	return histogram.Fprint(STDOUT, hist, histogram.Linear(40))
}
