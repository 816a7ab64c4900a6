package runlog

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.out")
	_, err := ReadFile(path, Options{})
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWriteReadFile_Tagged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.bin")
	h := Header{Epochs: 3, MinibatchSize: 32, LearningRate: 0.001}
	run, err := NewRun(h, []float64{0.9, 0.5, 0.2}, []float64{10, 50, 90}, []float64{1.0, 0.6, 0.3}, []float64{8, 45, 88})
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, run, LayoutTagged))
	got, err := ReadFile(path, Options{Layout: LayoutTagged, Strict: true})
	require.NoError(t, err)
	assert.Equal(t, run.Header(), got.Header())
	assert.Equal(t, 0.3, got.CostsTest()[2])
	assert.Equal(t, int64(3*4*8), got.MetricBytes())
}

func TestReadFile_DecodeErrorKeepsType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.out")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))
	_, err := ReadFile(path, Options{Layout: LayoutLegacyF32})
	var herr *MalformedHeaderError
	require.ErrorAs(t, err, &herr)
	assert.Contains(t, err.Error(), path)
}

func TestNewRun_LengthMismatch(t *testing.T) {
	_, err := NewRun(Header{Epochs: 2}, []float64{1, 2}, []float64{1}, []float64{1, 2}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRun_IsImmutable(t *testing.T) {
	in := []float64{1, 2}
	run, err := NewRun(Header{Epochs: 2}, in, in, in, in)
	require.NoError(t, err)
	in[0] = 99
	out := run.CostsTrain()
	out[1] = 42
	assert.Equal(t, []float64{1, 2}, run.CostsTrain())
	assert.Equal(t, 2.0, run.At(CostsTrain, 1))
	assert.True(t, run.At(CostsTrain, 5) != run.At(CostsTrain, 5), "out of range should be NaN")
}

func TestParseLayout(t *testing.T) {
	for in, want := range map[string]Layout{"": LayoutTagged, "tagged": LayoutTagged, "A": LayoutLegacyF32, "f32": LayoutLegacyF32, "legacy-f64": LayoutLegacyF64, "b": LayoutLegacyF64} {
		got, err := ParseLayout(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLayout("f16")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestRun_LearningRateString(t *testing.T) {
	r, err := NewRun(Header{LearningRate: 0.001}, nil, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "0.001", r.LearningRateString())
	assert.Equal(t, "0.001", r.WithVariant(VariantF32).LearningRateString())

	back, err := Decode(writeLegacy(t, VariantF32, Header{LearningRate: 0.001}), Options{Layout: LayoutLegacyF32})
	require.NoError(t, err)
	assert.NotEqual(t, 0.001, back.Header().LearningRate)
	assert.Equal(t, "0.001", back.LearningRateString())
}
