package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Default figure size used when a caller passes a non-positive width or height.
const (
	DefaultWidth  = 1100
	DefaultHeight = 800
)

const (
	captionLineHeight = 16
	captionPad        = 8
)

// MinPanelHeight is the smallest panel go-chart still lays out legibly.
const MinPanelHeight = 120

// MinCaptionHeight is the caption strip holding a single line.
const MinCaptionHeight = captionLineHeight + 2*captionPad

// MinFigureHeight is the smallest height RenderFigure accepts for the given panel count.
// Longer captions are cut to fit rather than squeezing the panels.
func MinFigureHeight(panels int) int {
	return panels*MinPanelHeight + MinCaptionHeight
}

// Theme holds the figure colors.
type Theme struct {
	Background drawing.Color
	Canvas     drawing.Color
	Text       drawing.Color
	Axis       drawing.Color
}

var (
	// LightTheme matches go-chart's defaults.
	LightTheme = Theme{
		Background: drawing.ColorWhite,
		Canvas:     drawing.ColorWhite,
		Text:       drawing.ColorFromHex("333333"),
		Axis:       drawing.ColorFromHex("666666"),
	}
	// DarkTheme follows the viewer's dark window.
	DarkTheme = Theme{
		Background: drawing.Color{R: 18, G: 18, B: 18, A: 255},
		Canvas:     drawing.Color{R: 28, G: 28, B: 28, A: 255},
		Text:       drawing.Color{R: 230, G: 230, B: 230, A: 255},
		Axis:       drawing.Color{R: 150, G: 150, B: 150, A: 255},
	}
)

// RenderFigure draws the caption and stacks the panels vertically in one image.
func RenderFigure(fig Figure, width, height int, th Theme) (image.Image, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if len(fig.Panels) == 0 {
		return nil, fmt.Errorf("figure has no panels")
	}
	if height < MinFigureHeight(len(fig.Panels)) {
		return nil, fmt.Errorf("figure height %d too small for %d panels (need %d)", height, len(fig.Panels), MinFigureHeight(len(fig.Panels)))
	}
	face := basicfont.Face7x13
	lines := wrapText(fig.Title, face, width-2*captionPad)
	maxLines := (height - len(fig.Panels)*MinPanelHeight - 2*captionPad) / captionLineHeight
	if len(lines) > maxLines {
		lines = lines[:maxLines]
		lines[maxLines-1] += " ..."
	}
	captionH := len(lines)*captionLineHeight + 2*captionPad
	panelH := (height - captionH) / len(fig.Panels)

	out := blank(width, height, th.Background)
	for i, line := range lines {
		drawText(out, face, line, th.Text, captionPad+(i+1)*captionLineHeight-3, true)
	}
	for i, p := range fig.Panels {
		img, err := renderPanel(p, width, panelH, th)
		if err != nil {
			return nil, err
		}
		top := captionH + i*panelH
		r := image.Rect(0, top, width, top+panelH)
		draw.Draw(out, r, img, img.Bounds().Min, draw.Src)
	}
	return out, nil
}

// renderPanel renders one panel with go-chart. Panels without any value render as a
// titled blank so a run with zero epochs still produces a figure.
func renderPanel(p Panel, width, height int, th Theme) (image.Image, error) {
	var series []chart.Series
	minY := math.MaxFloat64
	maxY := -math.MaxFloat64
	longest := 0
	for _, s := range p.Series {
		if len(s.Values) == 0 {
			continue
		}
		xs := make([]float64, len(s.Values))
		ys := make([]float64, len(s.Values))
		for i, v := range s.Values {
			xs[i] = float64(i)
			ys[i] = v
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < minY {
				minY = v
			}
			if v > maxY {
				maxY = v
			}
		}
		if len(s.Values) > longest {
			longest = len(s.Values)
		}
		st := chart.Style{StrokeColor: s.Color, StrokeWidth: 2}
		if len(xs) == 1 {
			// a single epoch: draw it as a dot on a short flat segment
			xs = []float64{0, 1}
			ys = []float64{ys[0], ys[0]}
			st.DotWidth = 4
			st.DotColor = s.Color
		}
		series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: xs, YValues: ys, Style: st})
	}
	if len(series) == 0 || minY == math.MaxFloat64 {
		return emptyPanel(p, width, height, th), nil
	}

	nMin, nMax := niceAxisBounds(minY, maxY)
	for _, sr := range series {
		clampValues(sr.(chart.ContinuousSeries).YValues, nMin, nMax)
	}
	last := longest - 1
	if last < 1 {
		last = 1
	}
	text := chart.Style{FontColor: th.Text, StrokeColor: th.Axis}
	ch := chart.Chart{
		Title:      p.Title,
		TitleStyle: chart.Style{FontColor: th.Text, FontSize: 12},
		Width:      width,
		Height:     height,
		Background: chart.Style{FillColor: th.Background, Padding: chart.Box{Top: 36, Left: 16, Right: 16, Bottom: 16}},
		Canvas:     chart.Style{FillColor: th.Canvas},
		XAxis: chart.XAxis{
			Name:      p.XLabel,
			NameStyle: text,
			Style:     text,
			Range:     &chart.ContinuousRange{Min: 0, Max: float64(last)},
			Ticks:     epochTicks(last, 10),
		},
		YAxis: chart.YAxis{
			Name:      p.YLabel,
			NameStyle: text,
			Style:     text,
			Range:     &chart.ContinuousRange{Min: nMin, Max: nMax},
			Ticks:     niceTicks(nMin, nMax, 6),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch, chart.Style{FillColor: th.Canvas, FontColor: th.Text, StrokeColor: th.Axis})}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", p.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", p.Title, err)
	}
	return img, nil
}

// clampValues pins values outside [lo, hi] (infinities included) to the axis edges.
func clampValues(ys []float64, lo, hi float64) {
	for i, v := range ys {
		if v < lo {
			ys[i] = lo
		} else if v > hi {
			ys[i] = hi
		}
	}
}

func emptyPanel(p Panel, width, height int, th Theme) image.Image {
	img := blank(width, height, th.Background)
	face := basicfont.Face7x13
	drawText(img, face, p.Title, th.Text, 24, true)
	drawText(img, face, "no epochs recorded", th.Axis, height/2, true)
	return img
}

func blank(w, h int, bg color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

// drawText writes text with its baseline at y, centered horizontally or from the left pad.
func drawText(dst *image.RGBA, face font.Face, text string, col color.Color, y int, center bool) {
	if strings.TrimSpace(text) == "" {
		return
	}
	dr := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
	x := captionPad
	if center {
		tw := dr.MeasureString(text).Ceil()
		if tw < dst.Bounds().Dx() {
			x = (dst.Bounds().Dx() - tw) / 2
		}
	}
	dr.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	dr.DrawString(text)
}

// wrapText breaks text at spaces into lines no wider than maxW pixels.
func wrapText(text string, face font.Face, maxW int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		next := cur + " " + w
		if font.MeasureString(face, next).Ceil() > maxW {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	return append(lines, cur)
}
