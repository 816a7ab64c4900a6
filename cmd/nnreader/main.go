// Command nnreader prints the header, sizes and a short analysis of training logs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/drfailer/nn-test/src/analysis"
	"github.com/drfailer/nn-test/src/config"
	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/runlog"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("nnreader", flag.ContinueOnError)
	var configPath, format string
	var strict bool
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&format, "format", "tagged", "On-disk layout: tagged, f32 or f64")
	fs.BoolVar(&strict, "strict", false, "Reject files with bytes after the last metric")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("usage: nnreader [flags] file[:label]...")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Decode.Layout = format
		case "strict":
			cfg.Decode.Strict = strict
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetLogLevel(cfg.Logging.Level)
	opts := cfg.DecodeOptions()

	var named []analysis.Named
	var sums []analysis.Summary
	for _, arg := range fs.Args() {
		src := runlog.ParseSource(arg)
		r, err := runlog.ReadFile(src.Path, opts)
		if err != nil {
			return err
		}
		s := analysis.Summarize(r)
		if err := printRun(out, src, r, s, opts.Layout); err != nil {
			return err
		}
		named = append(named, analysis.Named{Label: src.Label, Summary: s})
		sums = append(sums, s)
	}
	if len(named) > 1 {
		fmt.Fprintln(out, "Ranking by best test accuracy:")
		for i, n := range analysis.RankByTestAccuracy(named) {
			fmt.Fprintf(out, "%2d. %s: %s\n", i+1, n.Label, formatValue(n.Summary.BestAccuracyTest))
		}
		acc, cost := analysis.CompareLastVsPrevious(sums)
		fmt.Fprintf(out, "Last vs previous: test accuracy %+.1f%%, test cost %+.1f%%\n", acc, cost)
	}
	return nil
}

func printRun(out io.Writer, src runlog.Source, r *runlog.Run, s analysis.Summary, layout runlog.Layout) error {
	h := r.Header()
	used, err := r.EncodedSize(layout)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", src.Label)
	fmt.Fprintf(out, "  format:          %s (%s)\n", layout, r.Variant())
	fmt.Fprintf(out, "  epochs:          %d\n", h.Epochs)
	fmt.Fprintf(out, "  minibatch size:  %d\n", h.MinibatchSize)
	fmt.Fprintf(out, "  learning rate:   %s\n", r.LearningRateString())
	fmt.Fprintf(out, "  metric bytes:    %d\n", r.MetricBytes())
	if fi, err := os.Stat(src.Path); err == nil {
		fmt.Fprintf(out, "  file size:       %d (%d trailing)\n", fi.Size(), fi.Size()-used)
	}
	if s.Epochs == 0 {
		fmt.Fprintln(out, "  no epochs recorded")
		return nil
	}
	fmt.Fprintf(out, "  final cost:      train %s, test %s\n", formatValue(s.FinalCostTrain), formatValue(s.FinalCostTest))
	fmt.Fprintf(out, "  final accuracy:  train %s, test %s\n", formatValue(s.FinalAccuracyTrain), formatValue(s.FinalAccuracyTest))
	fmt.Fprintf(out, "  min test cost:   %s at epoch %d\n", formatValue(s.MinCostTest), s.MinCostTestEpoch)
	fmt.Fprintf(out, "  best test acc:   %s at epoch %d\n", formatValue(s.BestAccuracyTest), s.BestAccuracyTestEpoch)
	fmt.Fprintf(out, "  gap (acc):       %s\n", formatValue(s.GeneralizationGap))
	return nil
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", v)
}
