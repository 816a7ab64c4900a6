// Command nnplot draws the cost and accuracy curves stored in training logs.
//
//	nnplot run.bin                      single run: train and test curves
//	nnplot a.bin:adam b.bin:sgd         comparison: test curves of every run
//	nnplot -out shots -format f32 run.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drfailer/nn-test/cmd/nnplot/uihelpers"
	"github.com/drfailer/nn-test/src/config"
	"github.com/drfailer/nn-test/src/export"
	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/plot"
	"github.com/drfailer/nn-test/src/runlog"
)

var errUsage = errors.New("usage: nnplot [flags] file[:label]...")

// newDisplay is swapped by tests that must not open a window.
var newDisplay = func(cfg *config.Config, title string) plot.Display {
	return &windowDisplay{Title: title, Dark: cfg.Chart.Dark}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logging.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("nnplot", flag.ContinueOnError)
	var (
		configPath string
		format     string
		strict     bool
		outDir     string
		exportPath string
		width      int
		height     int
		level      string
		light      bool
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&format, "format", "tagged", "On-disk layout: tagged, f32 or f64")
	fs.BoolVar(&strict, "strict", false, "Reject files with bytes after the last metric")
	fs.StringVar(&outDir, "out", "", "Write the figure as PNG into this directory instead of opening a window")
	fs.StringVar(&exportPath, "export", "", "Also export the decoded values to FILE.csv or FILE.xlsx")
	fs.IntVar(&width, "width", plot.DefaultWidth, "Figure width in pixels")
	fs.IntVar(&height, "height", plot.DefaultHeight, "Figure height in pixels")
	fs.StringVar(&level, "log-level", "info", "Log level: debug, info, warn, error")
	fs.BoolVar(&light, "light", false, "Use the light chart theme")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// explicit flags win over file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Decode.Layout = format
		case "strict":
			cfg.Decode.Strict = strict
		case "out":
			cfg.Output.Dir = outDir
		case "export":
			cfg.Output.Export = exportPath
		case "width":
			cfg.Chart.Width = width
		case "height":
			cfg.Chart.Height = height
		case "log-level":
			cfg.Logging.Level = level
		case "light":
			cfg.Chart.Dark = !light
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	logging.SetLogLevel(cfg.Logging.Level)

	sources := make([]runlog.Source, 0, fs.NArg())
	for _, arg := range fs.Args() {
		sources = append(sources, runlog.ParseSource(arg))
	}
	comparison := len(sources) > 1 || sources[0].Labeled
	if err := checkExportTarget(cfg.Output.Export, len(sources)); err != nil {
		return err
	}

	runs, err := loadRuns(sources, cfg.DecodeOptions())
	if err != nil {
		return err
	}

	if cfg.Output.Export != "" {
		if err := exportRuns(cfg.Output.Export, runs); err != nil {
			return err
		}
	}

	th := plot.DarkTheme
	if !cfg.Chart.Dark {
		th = plot.LightTheme
	}
	r := &plot.Renderer{Width: cfg.Chart.Width, Height: cfg.Chart.Height, Theme: th}
	if cfg.Output.Dir != "" {
		name := "cost_accuracy.png"
		if comparison {
			name = "comparison.png"
		}
		r.Display = &plot.PNGDisplay{Dir: cfg.Output.Dir, Name: name}
	} else {
		r.Display = newDisplay(cfg, windowTitle(sources))
	}

	if comparison {
		return r.RenderComparison(runs)
	}
	return r.RenderSingle(runs[0].Run)
}

// loadRuns reads every source in order; the first failure aborts the whole batch.
func loadRuns(sources []runlog.Source, opts runlog.Options) ([]plot.LabeledRun, error) {
	defer logging.TimeTrack(time.Now(), "load runs")
	runs := make([]plot.LabeledRun, 0, len(sources))
	for _, src := range sources {
		run, err := runlog.ReadFile(src.Path, opts)
		if err != nil {
			return nil, err
		}
		logTrailing(src.Path, run, opts.Layout)
		logging.Debugf("loaded %s: %d epochs (%s)", src.Path, run.Epochs(), run.Variant())
		runs = append(runs, plot.LabeledRun{Run: run, Label: src.Label})
	}
	return runs, nil
}

// logTrailing reports bytes the lenient decoder ignored.
func logTrailing(path string, run *runlog.Run, layout runlog.Layout) {
	fi, err := os.Stat(path)
	if err != nil {
		return
	}
	used, err := run.EncodedSize(layout)
	if err != nil {
		return
	}
	if extra := fi.Size() - used; extra > 0 {
		logging.Debugf("%s: ignoring %d trailing bytes", path, extra)
	}
}

func checkExportTarget(path string, runs int) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		if path != "" {
			return fmt.Errorf("export %s: missing .csv or .xlsx extension", path)
		}
	case ".csv":
		if runs > 1 {
			return fmt.Errorf("export %s: csv holds a single run, use .xlsx for %d runs", path, runs)
		}
	case ".xlsx":
	default:
		return fmt.Errorf("export %s: unsupported extension", path)
	}
	return nil
}

func exportRuns(path string, runs []plot.LabeledRun) error {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return export.WriteCSVFile(path, runs[0].Run)
	}
	return export.WriteXLSX(path, runs)
}

func windowTitle(sources []runlog.Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = uihelpers.TruncatePath(s.Label, 40)
	}
	return "nnplot - " + strings.Join(names, ", ")
}
