package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	cytodiff "github.com/broadcyto/cytodiff"
	"github.com/broadcyto/cytodiff/analysis"
	_ "github.com/broadcyto/cytodiff/compileinfoprint"
	"github.com/broadcyto/cytodiff/cyto"
	"github.com/broadcyto/cytodiff/experiment"
	"github.com/broadcyto/cytodiff/fcs"
	"github.com/broadcyto/cytodiff/report"
)

func main() {
	var samplesPath, designPath, subsetsPath, analysisPath, outDir, secondary string
	var fisher, qcHeatmap bool
	var flowCofactor, massCofactor float64

	flag.StringVar(&samplesPath, "samples", "", "CSV mapping sample_id to FCS path.")
	flag.StringVar(&designPath, "design", "", "Long-format design table (sample_id, feature, level). CSV, TSV, or XLS.")
	flag.StringVar(&subsetsPath, "subsets", "", "Optional CSV naming cell-subset features (feature_id, feature_name).")
	flag.StringVar(&analysisPath, "analysis", "", "Path to the precomputed analysis artifacts (local or gs://).")
	flag.StringVar(&outDir, "out", "./report", "Output directory for plot and table bundles.")
	flag.StringVar(&secondary, "secondary", "", "Secondary grouping feature that drives the line plots.")
	flag.BoolVar(&fisher, "fisher", false, "Append an exploratory Fisher exact column to the results tables.")
	flag.BoolVar(&qcHeatmap, "heatmap", false, "Also import the FCS files and emit a median-expression QC heatmap.")
	flag.Float64Var(&flowCofactor, "flow-cofactor", 0, "Arcsinh cofactor for flow cytometry samples (0 = default 150).")
	flag.Float64Var(&massCofactor, "mass-cofactor", 0, "Arcsinh cofactor for mass cytometry samples (0 = default 5).")
	flag.Parse()

	if samplesPath == "" || designPath == "" || analysisPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	var client *storage.Client
	if strings.HasPrefix(analysisPath, "gs://") {
		var err error
		if client, err = storage.NewClient(context.Background()); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	exp, err := experiment.Load(samplesPath, designPath, subsetsPath, analysisPath)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	log.Printf("Loaded %d samples, %d design rows, %d subset definitions\n", len(exp.Samples), len(exp.Design), len(exp.SubsetFeatures))

	counts, err := analysis.LoadCounts(analysisPath, client)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	r := &report.Reporter{
		Experiment:    exp,
		Counts:        counts,
		Secondary:     secondary,
		Fisher:        fisher,
		StorageClient: client,
	}

	built, skipped := 0, 0
	for _, level := range analysis.Levels(counts) {
		for _, feature := range exp.Features() {
			if feature == secondary {
				continue
			}

			fr, err := r.Feature(level, feature)
			if err != nil {
				log.Fatalln(pfx.Err(err))
			}
			if fr == nil {
				log.Printf("No result table for %s × %s; skipping\n", level, feature)
				skipped++
				continue
			}

			if err := fr.Export(outDir); err != nil {
				log.Fatalln(pfx.Err(err))
			}
			built++
		}
	}
	log.Printf("Wrote %d feature reports to %s (%d skipped)\n", built, outDir, skipped)

	if qcHeatmap {
		if err := exportHeatmap(exp, client, outDir, flowCofactor, massCofactor); err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}
}

func exportHeatmap(exp *experiment.Experiment, client *storage.Client, outDir string, flowCofactor, massCofactor float64) error {
	opt := cyto.PreprocessOptions{FlowCofactor: flowCofactor, MassCofactor: massCofactor}

	samples := make([]*cyto.Sample, 0, len(exp.Samples))
	for _, info := range exp.Samples {
		r, _, err := cytodiff.MaybeOpenFromGoogleStorage(cytodiff.ExpandHome(info.Path), client)
		if err != nil {
			return err
		}

		f, err := fcs.Read(r)
		r.Close()
		if err != nil {
			return err
		}

		s, err := cyto.NewSample(info.SampleID, f)
		if err != nil {
			return err
		}
		s.Preprocess(opt)
		samples = append(samples, s)

		log.Printf("Imported %s (%s, %d events)\n", info.SampleID, s.Source, len(s.X))
	}

	bundle, err := report.ExpressionHeatmap(samples)
	if err != nil {
		return err
	}

	return bundle.Export(filepath.Join(outDir, "qc"))
}
