package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drfailer/nn-test/src/runlog"
)

func TestRun_ConvertsLegacyF32(t *testing.T) {
	dir := t.TempDir()
	in, out := filepath.Join(dir, "in.bin"), filepath.Join(dir, "out.nntl")
	r, err := runlog.NewRun(runlog.Header{Epochs: 2, MinibatchSize: 8, LearningRate: 0.1},
		[]float64{3, 2}, []float64{40, 60}, []float64{3.5, 2.5}, []float64{35, 55})
	require.NoError(t, err)
	r = r.WithVariant(runlog.VariantF32)
	require.NoError(t, runlog.WriteFile(in, r, runlog.LayoutLegacyF32))

	require.NoError(t, run([]string{"-from", "f32", "-o", out, in}))

	got, err := runlog.ReadFile(out, runlog.Options{Layout: runlog.LayoutTagged, Strict: true})
	require.NoError(t, err)
	assert.Equal(t, runlog.VariantF32, got.Variant())
	assert.Equal(t, r.Header(), got.Header())
	assert.Equal(t, r.AccuracyTest(), got.AccuracyTest())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, runlog.MagicBytes, string(data[:4]))
}

func TestRun_RejectsTaggedSource(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{"-from", "tagged", "-o", filepath.Join(dir, "o"), filepath.Join(dir, "i")})
	require.Error(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	err := run([]string{"-from", "f64", "-o", filepath.Join(dir, "o"), filepath.Join(dir, "missing")})
	var ioErr *runlog.IOError
	require.True(t, errors.As(err, &ioErr))
	_, statErr := os.Stat(filepath.Join(dir, "o"))
	assert.True(t, os.IsNotExist(statErr))
}
