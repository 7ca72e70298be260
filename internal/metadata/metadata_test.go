package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayValue(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"plain text", []byte("Test image"), "Test image"},
		{"utf8 text", []byte("caf\xc3\xa9"), "café"},
		{"empty", nil, ""},
		{"binary falls back to hex", []byte{0xff, 0xd8, 0x00, 0x01}, "ffd80001"},
		{"invalid utf8 sequence", []byte{0xc3, 0x28}, "c328"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayValue(tt.input))
		})
	}
}

func TestRationalFloat(t *testing.T) {
	assert.Equal(t, 0.5, Rational{Num: 1, Den: 2}.Float())
	assert.Equal(t, 46.14, Rational{Num: 4614, Den: 100}.Float())

	// A zero denominator evaluates to zero, not a panic or an error.
	assert.Equal(t, 0.0, Rational{Num: 7, Den: 0}.Float())
}

func TestRationalJSON(t *testing.T) {
	encoded, err := json.Marshal(Rational{Num: 40, Den: 1})
	require.NoError(t, err)
	assert.Equal(t, `"40/1"`, string(encoded))
}

func TestImageMetadataJSONOmitsEmptyExif(t *testing.T) {
	meta := ImageMetadata{
		Format: "PNG",
		Mode:   "RGBA",
		Size:   Size{Width: 10, Height: 10},
		Info:   map[string]any{},
	}

	encoded, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), `"exif"`)
	assert.Contains(t, string(encoded), `"width":10`)
}
