package runlog

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Decode interprets data according to opts.Layout. It is a pure function: the whole run
// decodes or an error is returned.
func Decode(data []byte, opts Options) (*Run, error) {
	switch opts.Layout {
	case LayoutTagged:
		return decodeTagged(data, opts.Strict)
	case LayoutLegacyF32:
		return decodeBody(data, 0, VariantF32, opts.Strict)
	case LayoutLegacyF64:
		return decodeBody(data, 0, VariantF64, opts.Strict)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownLayout, int(opts.Layout))
	}
}

// decodeTagged checks the magic and dispatches on the version tag.
func decodeTagged(data []byte, strict bool) (*Run, error) {
	if len(data) < len(MagicBytes) {
		return nil, &MalformedHeaderError{Need: TagSize, Have: len(data)}
	}
	if string(data[:len(MagicBytes)]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if len(data) < TagSize {
		return nil, &MalformedHeaderError{Need: TagSize, Have: len(data)}
	}
	version := binary.LittleEndian.Uint32(data[4:TagSize])
	switch version {
	case FormatVersion1:
		return decodeBody(data[TagSize:], TagSize, VariantF32, strict)
	case FormatVersion2:
		return decodeBody(data[TagSize:], TagSize, VariantF64, strict)
	default:
		return nil, fmt.Errorf("%w: got %d, expected %d or %d", ErrUnsupportedVersion, version, FormatVersion1, FormatVersion2)
	}
}

// decodeBody reads the header scalars and the four metric arrays of one variant.
// base is the offset of body within the file, used only for error reporting.
func decodeBody(body []byte, base int, v Variant, strict bool) (*Run, error) {
	hs := v.HeaderSize()
	if len(body) < hs {
		return nil, &MalformedHeaderError{Need: base + hs, Have: base + len(body)}
	}
	h := Header{
		Epochs:        binary.LittleEndian.Uint64(body[0:8]),
		MinibatchSize: binary.LittleEndian.Uint64(body[8:16]),
		LearningRate:  readFloat(body[16:hs], v),
	}

	metrics := body[hs:]
	width := v.ElementWidth()
	need, ok := metricRegionSize(h.Epochs, width)
	have := int64(len(metrics))
	if !ok {
		return nil, &TruncatedInputError{Epochs: h.Epochs, Need: -1, Have: have}
	}
	if have < need {
		return nil, &TruncatedInputError{Epochs: h.Epochs, Need: need, Have: have}
	}
	if strict && have > need {
		return nil, &TrailingBytesError{Extra: have - need}
	}

	n := int(h.Epochs)
	r := &Run{header: h, variant: v}
	off := 0
	for i := range r.series {
		s := make([]float64, n)
		for j := range s {
			s[j] = readFloat(metrics[off:off+width], v)
			off += width
		}
		r.series[i] = s
	}
	return r, nil
}

// metricRegionSize returns 4 × epochs × width, or ok=false when that does not fit in an int.
func metricRegionSize(epochs uint64, width int) (int64, bool) {
	per := uint64(metricCount * width)
	if epochs > uint64(math.MaxInt)/per {
		return 0, false
	}
	return int64(epochs * per), true
}

func readFloat(b []byte, v Variant) float64 {
	if v == VariantF64 {
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
