package container

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/imertcoskun/geoint/internal/metadata"
	"github.com/imertcoskun/geoint/pkg/common"
)

// sofMarkers are the start-of-frame markers carrying dimensions and
// component counts. DHT (0xC4), JPG (0xC8) and DAC (0xCC) share the range
// but are not frames.
var sofMarkers = map[byte]bool{
	0xC0: true, 0xC1: true, 0xC2: true, 0xC3: true,
	0xC5: true, 0xC6: true, 0xC7: true,
	0xC9: true, 0xCA: true, 0xCB: true,
	0xCD: true, 0xCE: true, 0xCF: true,
}

// decodeJPEG walks the marker segments up to the scan data. SOF supplies
// dimensions and color mode; COM, APP0/JFIF and APP2/ICC populate Info;
// APP1/Exif carries the raw TIFF block for the tag mapper.
func decodeJPEG(data []byte) (*Image, error) {
	img := &Image{Format: "JPEG", Info: map[string]any{}}
	var iccChunks [][]byte
	sawSOF := false

	i := 2 // past SOI
scan:
	for i+2 <= len(data) {
		if data[i] != 0xFF {
			return nil, common.NewInvalidImageError()
		}
		marker := data[i+1]

		switch {
		case marker == 0xFF: // fill byte
			i++
			continue
		case marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7): // standalone
			i += 2
			continue
		case marker == 0xD9 || marker == 0xDA:
			// EOI, or SOS with entropy-coded data following; metadata
			// segments never appear past this point.
			break scan
		}

		if i+4 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[i+2 : i+4]))
		if length < 2 || i+2+length > len(data) {
			return nil, common.NewInvalidImageError()
		}
		seg := data[i+4 : i+2+length]

		switch {
		case sofMarkers[marker]:
			if len(seg) < 6 {
				return nil, common.NewInvalidImageError()
			}
			img.Height = uint(binary.BigEndian.Uint16(seg[1:3]))
			img.Width = uint(binary.BigEndian.Uint16(seg[3:5]))
			img.Mode = jpegMode(seg[5])
			sawSOF = true

		case marker == 0xFE: // COM
			img.Info["comment"] = metadata.DisplayValue(seg)

		case marker == 0xE0 && bytes.HasPrefix(seg, []byte("JFIF\x00")):
			parseJFIF(seg[5:], img.Info)

		case marker == 0xE1 && bytes.HasPrefix(seg, []byte("Exif\x00\x00")):
			img.Exif = seg[6:]

		case marker == 0xE2 && bytes.HasPrefix(seg, []byte("ICC_PROFILE\x00")):
			// Bytes 12-13 are the chunk sequence number and total count;
			// profiles larger than one segment arrive in order.
			if len(seg) > 14 {
				iccChunks = append(iccChunks, seg[14:])
			}
		}

		i += 2 + length
	}

	if !sawSOF {
		return nil, common.NewInvalidImageError()
	}
	if len(iccChunks) > 0 {
		img.Info["icc_profile"] = metadata.DisplayValue(bytes.Join(iccChunks, nil))
	}
	return img, nil
}

// jpegMode maps the SOF component count to a color mode code.
func jpegMode(components byte) string {
	switch components {
	case 1:
		return "L"
	case 3:
		return "RGB"
	case 4:
		return "CMYK"
	}
	return "unknown"
}

func parseJFIF(b []byte, info map[string]any) {
	if len(b) < 7 {
		return
	}
	info["jfif_version"] = fmt.Sprintf("%d.%d", b[0], b[1])
	info["jfif_unit"] = int(b[2])
	info["jfif_density"] = fmt.Sprintf("%dx%d",
		binary.BigEndian.Uint16(b[3:5]), binary.BigEndian.Uint16(b[5:7]))
}
