package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"runtime"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/drfailer/nn-test/cmd/nnplot/uihelpers"
	"github.com/drfailer/nn-test/src/logging"
	"github.com/drfailer/nn-test/src/plot"
)

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

// windowDisplay shows the figure in a fyne window and blocks until it is closed.
type windowDisplay struct {
	Title string
	Dark  bool
}

func (d *windowDisplay) Show(fig plot.Figure, img image.Image) error {
	if !hasGraphicalDisplay() {
		return &plot.DisplayError{Op: "show", Err: plot.ErrNoDisplay}
	}
	a := app.NewWithID("com.drfailer.nnplot")
	if d.Dark {
		a.Settings().SetTheme(&darkTheme{})
	}
	w := a.NewWindow(d.Title)

	chartImg := canvas.NewImageFromImage(img)
	chartImg.FillMode = canvas.ImageFillContain
	b := img.Bounds()
	minW, minH := uihelpers.ComputeMinImageSize(b.Dx(), b.Dy())
	chartImg.SetMinSize(fyne.NewSize(minW, minH))

	status := widget.NewLabel(uihelpers.Ellipsize(fig.Title, 160))
	status.Wrapping = fyne.TextWrapWord
	w.SetContent(container.NewBorder(nil, status, nil, nil, chartImg))

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export PNG…", func() { exportChartPNG(w, chartImg, "cost_accuracy.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { w.Close() }),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu))

	winW, winH := uihelpers.ComputeWindowSize(b.Dx(), b.Dy())
	w.Resize(fyne.NewSize(winW, winH))
	w.ShowAndRun()
	return nil
}

// hasGraphicalDisplay reports false on Linux sessions without X11 or Wayland.
func hasGraphicalDisplay() bool {
	if runtime.GOOS != "linux" {
		return true
	}
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// export PNG
func exportChartPNG(w fyne.Window, img *canvas.Image, defaultName string) {
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", w)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			logging.Errorf("export %s: %v", wc.URI().Path(), err)
			dialog.ShowError(err, w)
			return
		}
		logging.Infof("exported chart to %s", wc.URI().Path())
	}, w)
	fs.SetFileName(defaultName)
	fs.Show()
}
