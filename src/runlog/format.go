package runlog

import (
	"fmt"
	"strings"
)

// Format constants.
const (
	MagicBytes     = "NNTL"
	TagSize        = 8 // magic + uint32 version
	FormatVersion1 = 1 // variant A body (float32)
	FormatVersion2 = 2 // variant B body (float64)

	metricCount = 4
)

// Variant identifies the width of the learning rate and of every metric value.
type Variant int

const (
	// VariantF32 is the 20-byte header / float32 layout.
	VariantF32 Variant = iota + 1
	// VariantF64 is the 24-byte header / float64 layout.
	VariantF64
)

// ElementWidth is the size in bytes of the learning rate and of one metric value.
func (v Variant) ElementWidth() int {
	if v == VariantF64 {
		return 8
	}
	return 4
}

// HeaderSize is the fixed size of epoch count + minibatch size + learning rate.
func (v Variant) HeaderSize() int { return 8 + 8 + v.ElementWidth() }

func (v Variant) String() string {
	switch v {
	case VariantF32:
		return "f32"
	case VariantF64:
		return "f64"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// version returns the tag written for v in the tagged layout.
func (v Variant) version() uint32 {
	if v == VariantF64 {
		return FormatVersion2
	}
	return FormatVersion1
}

// Layout selects how a byte stream is interpreted.
type Layout int

const (
	// LayoutTagged expects the magic and a version tag before the variant body.
	LayoutTagged Layout = iota
	// LayoutLegacyF32 reads an untagged variant A file.
	LayoutLegacyF32
	// LayoutLegacyF64 reads an untagged variant B file.
	LayoutLegacyF64
)

func (l Layout) String() string {
	switch l {
	case LayoutTagged:
		return "tagged"
	case LayoutLegacyF32:
		return "f32"
	case LayoutLegacyF64:
		return "f64"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// ParseLayout maps a user supplied name to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tagged", "nntl":
		return LayoutTagged, nil
	case "f32", "a", "legacy-f32", "float32":
		return LayoutLegacyF32, nil
	case "f64", "b", "legacy-f64", "float64":
		return LayoutLegacyF64, nil
	default:
		return 0, fmt.Errorf("%w: %q (want tagged, f32 or f64)", ErrUnknownLayout, s)
	}
}

// Options configures Decode.
type Options struct {
	Layout Layout
	// Strict rejects bytes after the metric region instead of ignoring them.
	Strict bool
}
