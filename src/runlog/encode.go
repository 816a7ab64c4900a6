package runlog

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Encode writes run in the given layout; it is the inverse of Decode. The tagged layout
// uses the run's own variant. Legacy layouts narrow or widen values to their fixed width.
func Encode(run *Run, layout Layout) ([]byte, error) {
	v, tagged, err := run.encoding(layout)
	if err != nil {
		return nil, err
	}
	size, _ := run.EncodedSize(layout)
	buf := make([]byte, 0, size)
	if tagged {
		buf = append(buf, MagicBytes...)
		buf = binary.LittleEndian.AppendUint32(buf, v.version())
	}
	h := run.Header()
	buf = binary.LittleEndian.AppendUint64(buf, h.Epochs)
	buf = binary.LittleEndian.AppendUint64(buf, h.MinibatchSize)
	buf = appendFloat(buf, h.LearningRate, v)
	for _, s := range run.series {
		for _, f := range s {
			buf = appendFloat(buf, f, v)
		}
	}
	return buf, nil
}

// encoding resolves the variant written for layout and whether it carries the tag.
func (r *Run) encoding(layout Layout) (Variant, bool, error) {
	switch layout {
	case LayoutTagged:
		v := r.Variant()
		if v != VariantF32 && v != VariantF64 {
			v = VariantF64
		}
		return v, true, nil
	case LayoutLegacyF32:
		return VariantF32, false, nil
	case LayoutLegacyF64:
		return VariantF64, false, nil
	}
	return 0, false, fmt.Errorf("%w: %d", ErrUnknownLayout, int(layout))
}

// EncodedSize is the number of bytes Encode produces for layout. A decoded run reports
// the bytes its decoder consumed, so anything beyond it in the source file is trailing.
func (r *Run) EncodedSize(layout Layout) (int64, error) {
	v, tagged, err := r.encoding(layout)
	if err != nil {
		return 0, err
	}
	n := int64(v.HeaderSize()) + r.MetricBytesFor(v)
	if tagged {
		n += TagSize
	}
	return n, nil
}

// MetricBytesFor is the size of the run's metric region when written as v.
func (r *Run) MetricBytesFor(v Variant) int64 {
	return int64(r.Epochs()) * metricCount * int64(v.ElementWidth())
}

func appendFloat(b []byte, f float64, v Variant) []byte {
	if v == VariantF64 {
		return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
	}
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(f)))
}
