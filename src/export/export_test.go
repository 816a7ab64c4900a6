package export

import (
	"archive/zip"
	"bytes"
	"io"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/drfailer/nn-test/src/plot"
	"github.com/drfailer/nn-test/src/runlog"
)

func sampleRun(t *testing.T, epochs int) *runlog.Run {
	t.Helper()
	mk := func(base float64) []float64 {
		out := make([]float64, epochs)
		for i := range out {
			out[i] = base + float64(i)
		}
		return out
	}
	r, err := runlog.NewRun(runlog.Header{Epochs: uint64(epochs), MinibatchSize: 8, LearningRate: 0.5}, mk(1), mk(10), mk(2), mk(20))
	require.NoError(t, err)
	return r
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRun(t, 2)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "epoch,cost_train,accuracy_train,cost_test,accuracy_test", lines[0])
	assert.Equal(t, "1,2,11,3,21", lines[2])
}

func TestWriteCSVFile_ZeroEpochs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteCSVFile(path, sampleRun(t, 0)))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.xlsx")
	runs := []plot.LabeledRun{
		{Run: sampleRun(t, 3), Label: "adam:lr/0.5"},
		{Run: sampleRun(t, 2), Label: "adam:lr/0.5"},
		{Run: sampleRun(t, 0), Label: ""},
	}
	require.NoError(t, WriteXLSX(path, runs))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, "adam_lr_0.5", "adam_lr_0.5 (2)", "run"}, f.GetSheetList())

	rows, err := f.GetRows("adam_lr_0.5")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"2", "3", "12", "4", "22"}, rows[3])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 4)
	assert.Equal(t, "adam:lr/0.5", summary[1][0])
	assert.Equal(t, "3", summary[1][1])
	assert.Equal(t, "22", summary[1][6])
}

func TestUniqueSheetName_Truncates(t *testing.T) {
	used := map[string]bool{}
	long := strings.Repeat("x", 40)
	a := uniqueSheetName(long, used)
	b := uniqueSheetName(long, used)
	assert.Len(t, a, maxSheetName)
	assert.Len(t, b, maxSheetName)
	assert.NotEqual(t, a, b)
}

func TestWriteXLSX_NonFiniteValuesAreText(t *testing.T) {
	nan := math.NaN()
	r, err := runlog.NewRun(runlog.Header{Epochs: 2, MinibatchSize: 4, LearningRate: 0.1},
		[]float64{1, math.Inf(1)}, []float64{50, 60}, []float64{nan, 2}, []float64{nan, nan})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nan.xlsx")
	require.NoError(t, WriteXLSX(path, []plot.LabeledRun{{Run: r, Label: "diverged"}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("diverged")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"0", "1", "50", "NaN", "NaN"}, rows[1])
	assert.Equal(t, []string{"1", "+Inf", "60", "2", "NaN"}, rows[2])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, "NaN", summary[1][5], "final test accuracy")
	assert.Equal(t, "NaN", summary[1][6], "best test accuracy")
	assert.Equal(t, "-1", summary[1][7], "best epoch")

	// no worksheet may carry a non-numeric value in a numeric cell
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, zf := range zr.File {
		if !strings.HasPrefix(zf.Name, "xl/worksheets/") {
			continue
		}
		rc, err := zf.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		for _, bad := range []string{"<v>NaN</v>", "<v>+Inf</v>", "<v>Inf</v>", "<v>-Inf</v>"} {
			assert.NotContains(t, string(body), bad, zf.Name)
		}
	}
}
