package imagetest

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// JPEGOptions controls the synthetic JPEG produced by BuildJPEG.
type JPEGOptions struct {
	Width      uint16
	Height     uint16
	Components byte   // 1 = grayscale, 3 = YCbCr, 4 = CMYK
	Comment    string // emitted as a COM segment when non-empty
	Exif       []byte // emitted as APP1 when non-nil
	ICCProfile []byte // emitted as a single APP2 chunk when non-nil
}

// BuildJPEG assembles a JPEG header with JFIF, optional metadata segments,
// an SOF0 frame, and an empty scan.
func BuildJPEG(t *testing.T, opts JPEGOptions) []byte {
	t.Helper()

	if opts.Components == 0 {
		opts.Components = 3
	}

	out := &bytes.Buffer{}
	out.Write([]byte{0xFF, 0xD8}) // SOI

	jfif := append([]byte("JFIF\x00"), 1, 1, 0, 0, 1, 0, 1, 0, 0)
	writeSegment(out, 0xE0, jfif)

	if opts.Exif != nil {
		writeSegment(out, 0xE1, append([]byte("Exif\x00\x00"), opts.Exif...))
	}
	if opts.ICCProfile != nil {
		writeSegment(out, 0xE2, append([]byte("ICC_PROFILE\x00\x01\x01"), opts.ICCProfile...))
	}
	if opts.Comment != "" {
		writeSegment(out, 0xFE, []byte(opts.Comment))
	}

	sof := []byte{8} // precision
	sof = binary.BigEndian.AppendUint16(sof, opts.Height)
	sof = binary.BigEndian.AppendUint16(sof, opts.Width)
	sof = append(sof, opts.Components)
	for id := byte(1); id <= opts.Components; id++ {
		sof = append(sof, id, 0x11, 0)
	}
	writeSegment(out, 0xC0, sof)

	sos := []byte{opts.Components}
	for id := byte(1); id <= opts.Components; id++ {
		sos = append(sos, id, 0)
	}
	sos = append(sos, 0, 63, 0)
	writeSegment(out, 0xDA, sos)

	out.Write([]byte{0xFF, 0xD9}) // EOI
	return out.Bytes()
}

func writeSegment(w *bytes.Buffer, marker byte, data []byte) {
	w.Write([]byte{0xFF, marker})
	binary.Write(w, binary.BigEndian, uint16(len(data)+2))
	w.Write(data)
}
