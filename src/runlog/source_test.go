package runlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		arg  string
		want Source
	}{
		{"a.bin:Adam", Source{Path: "a.bin", Label: "Adam", Labeled: true}},
		{"b.bin", Source{Path: "b.bin", Label: "b.bin"}},
		{"runs/x:y.bin:SGD lr=0.01", Source{Path: "runs/x:y.bin", Label: "SGD lr=0.01", Labeled: true}},
		{"c.bin:", Source{Path: "c.bin:", Label: "c.bin:"}},
		{":label", Source{Path: ":label", Label: ":label"}},
		{`C:\runs\a.bin`, Source{Path: `C:\runs\a.bin`, Label: `C:\runs\a.bin`}},
		{`C:\runs\a.bin:Adam`, Source{Path: `C:\runs\a.bin`, Label: "Adam", Labeled: true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSource(tt.arg), tt.arg)
	}
}
