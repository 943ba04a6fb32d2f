package main

import (
	"bufio"
	"flag"
	"log"
	"os"

	cytodiff "github.com/broadcyto/cytodiff"
	_ "github.com/broadcyto/cytodiff/compileinfoprint"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

// Dumps the TEXT keywords, resolved channel table, and per-channel summary
// statistics of one FCS file. Emits to stdout.
func main() {
	defer STDOUT.Flush()

	var path, channel string
	var bins int

	flag.StringVar(&path, "file", "", "Path to a single raw .fcs file.")
	flag.StringVar(&channel, "channel", "", "Optional channel display name to histogram.")
	flag.IntVar(&bins, "bins", 25, "Histogram bucket count.")
	flag.Parse()

	if path == "" {
		flag.Usage()
		os.Exit(1)
	}

	f, _, err := cytodiff.MaybeOpenFromGoogleStorage(cytodiff.ExpandHome(path), nil)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	if err := ProcessFCS(f, channel, bins); err != nil {
		log.Fatalln(err)
	}
}
