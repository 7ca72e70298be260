package container

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"

	"github.com/imertcoskun/geoint/internal/metadata"
	"github.com/imertcoskun/geoint/pkg/common"
)

// decodePNG walks the chunk stream after the 8-byte signature. IHDR supplies
// dimensions and color mode; textual and profile chunks populate Info; an
// eXIf chunk carries a raw TIFF block for the tag mapper.
func decodePNG(data []byte) (*Image, error) {
	img := &Image{Format: "PNG", Info: map[string]any{}}
	sawIHDR := false

	off := 8
	for off+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[off : off+4]))
		typ := string(data[off+4 : off+8])
		start := off + 8
		end := start + length
		if length < 0 || end+4 > len(data) {
			// Truncated chunk: keep whatever was scanned so far.
			break
		}
		chunk := data[start:end]

		switch typ {
		case "IHDR":
			if len(chunk) < 13 {
				return nil, common.NewInvalidImageError()
			}
			img.Width = uint(binary.BigEndian.Uint32(chunk[0:4]))
			img.Height = uint(binary.BigEndian.Uint32(chunk[4:8]))
			img.Mode = pngMode(chunk[9], chunk[8])
			sawIHDR = true

		case "tEXt":
			if keyword, value, ok := splitKeyword(chunk); ok {
				img.Info[keyword] = metadata.DisplayValue(value)
			}

		case "zTXt":
			keyword, rest, ok := splitKeyword(chunk)
			if !ok || len(rest) < 1 {
				break
			}
			if text, err := inflate(rest[1:]); err == nil {
				img.Info[keyword] = metadata.DisplayValue(text)
			}

		case "iTXt":
			if keyword, text, ok := parseITXt(chunk); ok {
				img.Info[keyword] = metadata.DisplayValue(text)
			}

		case "iCCP":
			_, rest, ok := splitKeyword(chunk)
			if !ok || len(rest) < 1 {
				break
			}
			if profile, err := inflate(rest[1:]); err == nil {
				img.Info["icc_profile"] = metadata.DisplayValue(profile)
			}

		case "gAMA":
			if len(chunk) >= 4 {
				img.Info["gamma"] = float64(binary.BigEndian.Uint32(chunk[0:4])) / 100000
			}

		case "eXIf":
			img.Exif = chunk

		case "IEND":
			if !sawIHDR {
				return nil, common.NewInvalidImageError()
			}
			return img, nil
		}

		off = end + 4 // skip CRC
	}

	if !sawIHDR {
		return nil, common.NewInvalidImageError()
	}
	return img, nil
}

// pngMode maps an IHDR color type and bit depth to a color mode code.
func pngMode(colorType, bitDepth byte) string {
	switch colorType {
	case 0:
		switch bitDepth {
		case 1:
			return "1"
		case 16:
			return "I;16"
		default:
			return "L"
		}
	case 2:
		return "RGB"
	case 3:
		return "P"
	case 4:
		return "LA"
	case 6:
		return "RGBA"
	}
	return "unknown"
}

// parseITXt unpacks an iTXt chunk: keyword, compression flag and method,
// language tag, translated keyword, then the text itself.
func parseITXt(chunk []byte) (string, []byte, bool) {
	keyword, rest, ok := splitKeyword(chunk)
	if !ok || len(rest) < 2 {
		return "", nil, false
	}
	compressed := rest[0] == 1
	rest = rest[2:]

	// Skip the language tag and translated keyword.
	for i := 0; i < 2; i++ {
		idx := bytes.IndexByte(rest, 0)
		if idx < 0 {
			return "", nil, false
		}
		rest = rest[idx+1:]
	}

	if compressed {
		text, err := inflate(rest)
		if err != nil {
			return "", nil, false
		}
		return keyword, text, true
	}
	return keyword, rest, true
}

// splitKeyword splits a chunk body at its first NUL separator.
func splitKeyword(chunk []byte) (string, []byte, bool) {
	i := bytes.IndexByte(chunk, 0)
	if i < 0 {
		return "", nil, false
	}
	return string(chunk[:i]), chunk[i+1:], true
}

func inflate(b []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
