package imagetest

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"sort"
	"testing"
)

// PNG color types.
const (
	PNGGray      = 0
	PNGTruecolor = 2
	PNGPalette   = 3
	PNGGrayAlpha = 4
	PNGRGBA      = 6
)

// PNGOptions controls the synthetic PNG produced by BuildPNG.
type PNGOptions struct {
	Width     uint32
	Height    uint32
	ColorType byte
	Text      map[string]string // emitted as tEXt chunks, sorted by keyword
	Gamma     float64           // emitted as gAMA when non-zero
	Exif      []byte            // emitted as an eXIf chunk when non-nil
}

// BuildPNG assembles a structurally valid PNG with real chunk CRCs and a
// zlib-compressed all-zero IDAT.
func BuildPNG(t *testing.T, opts PNGOptions) []byte {
	t.Helper()

	out := &bytes.Buffer{}
	out.Write([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], opts.Width)
	binary.BigEndian.PutUint32(ihdr[4:8], opts.Height)
	ihdr[8] = 8 // bit depth
	ihdr[9] = opts.ColorType
	writeChunk(out, "IHDR", ihdr)

	if opts.Gamma != 0 {
		gama := make([]byte, 4)
		binary.BigEndian.PutUint32(gama, uint32(opts.Gamma*100000))
		writeChunk(out, "gAMA", gama)
	}

	keywords := make([]string, 0, len(opts.Text))
	for k := range opts.Text {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	for _, k := range keywords {
		body := append(append([]byte(k), 0), []byte(opts.Text[k])...)
		writeChunk(out, "tEXt", body)
	}

	if opts.Exif != nil {
		writeChunk(out, "eXIf", opts.Exif)
	}

	writeChunk(out, "IDAT", zeroIDAT(t, opts))
	writeChunk(out, "IEND", nil)
	return out.Bytes()
}

func zeroIDAT(t *testing.T, opts PNGOptions) []byte {
	t.Helper()

	bytesPerPixel := map[byte]uint32{
		PNGGray:      1,
		PNGTruecolor: 3,
		PNGPalette:   1,
		PNGGrayAlpha: 2,
		PNGRGBA:      4,
	}[opts.ColorType]

	raw := make([]byte, opts.Height*(1+opts.Width*bytesPerPixel))
	buf := &bytes.Buffer{}
	zw := zlib.NewWriter(buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("compress IDAT: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close IDAT writer: %v", err)
	}
	return buf.Bytes()
}

func writeChunk(w *bytes.Buffer, typ string, data []byte) {
	binary.Write(w, binary.BigEndian, uint32(len(data)))
	w.WriteString(typ)
	w.Write(data)

	crc := crc32.NewIEEE()
	crc.Write([]byte(typ))
	crc.Write(data)
	binary.Write(w, binary.BigEndian, crc.Sum32())
}
