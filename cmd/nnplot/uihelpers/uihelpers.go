// Package uihelpers holds the window sizing and text fitting rules of the nnplot
// window, kept free of fyne so they can be tested headlessly.
package uihelpers

import (
	"path/filepath"
	"unicode/utf8"
)

// ComputeWindowSize derives the initial window size from the rendered figure, leaving
// room for the menu and status line. Width is clamped to [640, 1600], height to [480, 1000].
func ComputeWindowSize(imgW, imgH int) (float32, float32) {
	w := clamp(imgW, 640, 1600)
	h := clamp(imgH+60, 480, 1000)
	return float32(w), float32(h)
}

// ComputeMinImageSize keeps the chart readable when the window shrinks: half the figure,
// never below 320x240.
func ComputeMinImageSize(imgW, imgH int) (float32, float32) {
	return float32(clamp(imgW/2, 320, imgW)), float32(clamp(imgH/2, 240, imgH))
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TruncatePath shortens p to about n bytes, keeping the file name.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}

// Ellipsize cuts s to at most n runes, marking the cut with "…".
func Ellipsize(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
