// Command nnconvert rewrites an untagged legacy training log in the tagged format.
//
//	nnconvert -from f32 -o run.nntl run.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/runlog"
)

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
	fs := flag.NewFlagSet("nnconvert", flag.ContinueOnError)
	var from, outPath, level string
	var strict bool
	fs.StringVar(&from, "from", "", "Layout of the input file: f32 or f64")
	fs.StringVar(&outPath, "o", "", "Output path")
	fs.BoolVar(&strict, "strict", true, "Reject inputs with bytes after the last metric")
	fs.StringVar(&level, "log-level", "info", "Log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logging.SetLogLevel(level)
	if fs.NArg() != 1 || outPath == "" {
		fs.Usage()
		return errors.New("usage: nnconvert -from f32|f64 -o OUT IN")
	}
	layout, err := runlog.ParseLayout(from)
	if err != nil {
		return err
	}
	if layout == runlog.LayoutTagged {
		return fmt.Errorf("-from must name a legacy layout (f32 or f64), got %q", from)
	}
	in := fs.Arg(0)
	r, err := runlog.ReadFile(in, runlog.Options{Layout: layout, Strict: strict})
	if err != nil {
		return err
	}
	if err := runlog.WriteFile(outPath, r, runlog.LayoutTagged); err != nil {
		return err
	}
	logging.Infof("converted %s (%s, %d epochs) to %s", in, r.Variant(), r.Epochs(), outPath)
	return nil
}
