// Package container opens image byte streams, confirms the signature-derived
// format, and exposes container attributes: format, color mode, pixel
// dimensions, and ancillary key/value info such as text comments and ICC
// profiles. Raw EXIF payloads are surfaced for the tag mapper but never
// interpreted here.
package container

import (
	"github.com/imertcoskun/geoint/pkg/common"
)

// Image represents the decoded container attributes of a PNG or JPEG file.
type Image struct {
	Format string
	Mode   string
	Width  uint
	Height uint
	Info   map[string]any
	// Exif is the raw TIFF-encoded EXIF payload, nil when the container
	// carries none.
	Exif []byte
}

// allowedFormats lists the signature-derived formats accepted by Decode,
// sorted for stable error messages.
var allowedFormats = []string{"JPEG", "PNG"}

// Decode sniffs the true format of data and scans the matching container.
// The filename plays no part here: a recognized but disallowed signature is
// an UnsupportedFormatError, and bytes matching no known container are an
// InvalidImageError.
func Decode(data []byte) (*Image, error) {
	switch format := Sniff(data); format {
	case "PNG":
		return decodePNG(data)
	case "JPEG":
		return decodeJPEG(data)
	case "":
		return nil, common.NewInvalidImageError()
	default:
		return nil, common.NewUnsupportedFormatError(format, allowedFormats)
	}
}
