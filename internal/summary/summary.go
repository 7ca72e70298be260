// Package summary renders extracted image metadata as a deterministic,
// human-readable multi-line report.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/imertcoskun/geoint/internal/metadata"
)

// notableFields are the EXIF fields highlighted by the report, emitted in
// exactly this order when present.
var notableFields = []string{
	"ImageDescription",
	"UserComment",
	"Artist",
	"Copyright",
	"DateTimeOriginal",
	"Make",
	"Model",
}

// Build composes the report: a header line, an ancillary-info line when the
// container carried any, the notable EXIF fields, and either derived GPS
// coordinates, a GPS-present note, or the no-EXIF line. Pure function; the
// same metadata always yields the same report.
func Build(meta metadata.ImageMetadata) string {
	parts := []string{fmt.Sprintf("Format: %s, mode: %s, size: %dx%d",
		meta.Format, meta.Mode, meta.Size.Width, meta.Size.Height)}

	if line, ok := infoLine(meta.Info); ok {
		parts = append(parts, line)
	}

	if len(meta.Exif) > 0 {
		for _, field := range notableFields {
			if v, ok := meta.Exif[field]; ok {
				parts = append(parts, fmt.Sprintf("EXIF %s: %v", field, v))
			}
		}

		if coords, ok := meta.Exif["GPSCoordinates"].(metadata.GPSCoordinates); ok {
			parts = append(parts, fmt.Sprintf(
				"GPS coordinates detected -> lat: %.6f, lon: %.6f",
				coords.Latitude, coords.Longitude))
		} else if _, ok := meta.Exif["GPSInfo"]; ok {
			parts = append(parts, "GPS metadata present but could not derive coordinates.")
		}
	} else {
		parts = append(parts, "No EXIF metadata found.")
	}

	return strings.Join(parts, "\n")
}

// infoLine renders the ancillary info entries. Keys containing "comment" or
// equal to "description" (case-insensitively) take precedence: when any
// exist, only those are shown.
func infoLine(info map[string]any) (string, bool) {
	if len(info) == 0 {
		return "", false
	}

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var comments, all []string
	for _, k := range keys {
		entry := fmt.Sprintf("%s: %v", k, info[k])
		all = append(all, entry)

		lower := strings.ToLower(k)
		if strings.Contains(lower, "comment") || lower == "description" {
			comments = append(comments, entry)
		}
	}

	if len(comments) > 0 {
		return "Image comments/description -> " + strings.Join(comments, "; "), true
	}
	return "Image ancillary info -> " + strings.Join(all, "; "), true
}
