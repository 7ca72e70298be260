// Package gps derives signed decimal coordinates from resolved EXIF GPS
// tags.
package gps

import (
	"strings"
	"unicode/utf8"

	"github.com/imertcoskun/geoint/internal/metadata"
)

// Convert reads GPSLatitude, GPSLatitudeRef, GPSLongitude and
// GPSLongitudeRef out of a resolved GPS tag mapping. ok is false when any of
// the four is missing or unreadable: partial GPS blocks (altitude-only, say)
// are expected and not an error. References beginning with "S" or "W"
// (case-insensitive) negate their axis.
func Convert(tags map[string]any) (metadata.GPSCoordinates, bool) {
	lat, ok := components(tags["GPSLatitude"])
	if !ok {
		return metadata.GPSCoordinates{}, false
	}
	lon, ok := components(tags["GPSLongitude"])
	if !ok {
		return metadata.GPSCoordinates{}, false
	}
	latRef, ok := reference(tags["GPSLatitudeRef"])
	if !ok {
		return metadata.GPSCoordinates{}, false
	}
	lonRef, ok := reference(tags["GPSLongitudeRef"])
	if !ok {
		return metadata.GPSCoordinates{}, false
	}

	coords := metadata.GPSCoordinates{
		Latitude:  decimal(lat),
		Longitude: decimal(lon),
	}
	if strings.HasPrefix(strings.ToUpper(latRef), "S") {
		coords.Latitude = -coords.Latitude
	}
	if strings.HasPrefix(strings.ToUpper(lonRef), "W") {
		coords.Longitude = -coords.Longitude
	}
	return coords, true
}

// decimal folds degree/minute/second style rational components into decimal
// degrees: Σ component[i] / 60^i. The formula is general over however many
// components are present, and a zero denominator evaluates its component to
// zero rather than failing.
func decimal(comps []metadata.Rational) float64 {
	value := 0.0
	scale := 1.0
	for _, c := range comps {
		value += c.Float() / scale
		scale *= 60
	}
	return value
}

func components(v any) ([]metadata.Rational, bool) {
	switch v := v.(type) {
	case []metadata.Rational:
		return v, len(v) > 0
	case metadata.Rational:
		return []metadata.Rational{v}, true
	}
	return nil, false
}

// reference decodes a hemisphere reference, dropping undecodable bytes
// rather than failing.
func reference(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case []byte:
		var b strings.Builder
		for _, r := range string(v) {
			if r != utf8.RuneError {
				b.WriteRune(r)
			}
		}
		return b.String(), true
	}
	return "", false
}
