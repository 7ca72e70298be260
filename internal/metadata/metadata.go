package metadata

import (
	"encoding/json"
	"fmt"
)

// Size represents pixel dimensions
type Size struct {
	Width  uint `json:"width"`
	Height uint `json:"height"`
}

// ImageMetadata represents the metadata extracted from a single image:
// container attributes, ancillary key/value info, and resolved EXIF tags.
// Exif is omitted entirely when the image carries no EXIF data.
type ImageMetadata struct {
	Format string         `json:"format"`
	Mode   string         `json:"mode"`
	Size   Size           `json:"size"`
	Info   map[string]any `json:"info"`
	Exif   map[string]any `json:"exif,omitempty"`
}

// Rational represents an EXIF rational value as a raw numerator/denominator
// pair. The raw pair is preserved so GPS conversion can apply its own
// zero-denominator policy.
type Rational struct {
	Num int64
	Den int64
}

// Float converts the rational to a float64. A zero denominator evaluates to
// zero rather than failing.
func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Rational) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

// MarshalJSON renders the rational as a "num/den" string so raw EXIF values
// stay readable in JSON output.
func (r Rational) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// GPSCoordinates represents derived signed decimal degrees. Present in the
// EXIF mapping only when both axes and their reference hemispheres resolved.
type GPSCoordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
