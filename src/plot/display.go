package plot

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/runlog"
)

// ErrNoDisplay is returned when a Renderer has nowhere to show the figure.
var ErrNoDisplay = errors.New("no display configured")

// DisplayError reports a failure to render or present a figure.
type DisplayError struct {
	Op  string // "render", "show", "write", ...
	Err error
}

func (e *DisplayError) Error() string { return fmt.Sprintf("display %s: %v", e.Op, e.Err) }

func (e *DisplayError) Unwrap() error { return e.Err }

// Display presents a rendered figure. Interactive displays block until the user closes them.
type Display interface {
	Show(fig Figure, img image.Image) error
}

// PNGDisplay writes the figure to Dir/Name instead of opening a window.
type PNGDisplay struct {
	Dir  string
	Name string // defaults to figure.png

	// Written lists the files produced so far.
	Written []string
}

// Show encodes img as PNG.
func (d *PNGDisplay) Show(_ Figure, img image.Image) error {
	name := d.Name
	if name == "" {
		name = "figure.png"
	}
	if d.Dir != "" {
		if err := os.MkdirAll(d.Dir, 0o755); err != nil {
			return &DisplayError{Op: "write", Err: fmt.Errorf("create out dir: %w", err)}
		}
	}
	outPath := filepath.Join(d.Dir, name)
	f, err := os.Create(outPath)
	if err != nil {
		return &DisplayError{Op: "write", Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return &DisplayError{Op: "write", Err: fmt.Errorf("png encode %s: %w", outPath, err)}
	}
	if err := f.Close(); err != nil {
		return &DisplayError{Op: "write", Err: err}
	}
	d.Written = append(d.Written, outPath)
	logging.Infof("wrote %s", outPath)
	return nil
}

// Renderer builds figures from runs and passes them to its Display.
type Renderer struct {
	Display Display
	Width   int
	Height  int
	Theme   Theme
}

// RenderSingle shows the four series of one run.
func (r *Renderer) RenderSingle(run *runlog.Run) error {
	return r.render(SingleFigure(run))
}

// RenderComparison overlays the test series of every run, in order.
func (r *Renderer) RenderComparison(runs []LabeledRun) error {
	return r.render(ComparisonFigure(runs))
}

func (r *Renderer) render(fig Figure) error {
	if r.Display == nil {
		return &DisplayError{Op: "show", Err: ErrNoDisplay}
	}
	th := r.Theme
	if th == (Theme{}) {
		th = LightTheme
	}
	img, err := RenderFigure(fig, r.Width, r.Height, th)
	if err != nil {
		return &DisplayError{Op: "render", Err: err}
	}
	if err := r.Display.Show(fig, img); err != nil {
		var de *DisplayError
		if errors.As(err, &de) {
			return err
		}
		return &DisplayError{Op: "show", Err: err}
	}
	return nil
}
