// Package exif resolves raw EXIF tag tables into named mappings. IFD0 and
// the Exif sub-IFD flatten into one top-level map; the GPS sub-IFD becomes a
// nested GPSInfo map resolved against the GPS dictionary.
package exif

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/imertcoskun/geoint/internal/logger"
	"github.com/imertcoskun/geoint/internal/metadata"
	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// Sub-IFD pointer tags in IFD0.
const (
	tagExifIFD = 0x8769
	tagGPSIFD  = 0x8825
)

// Map decodes a raw TIFF-encoded EXIF payload into a mapping keyed by
// resolved tag names. Returns nil when the payload is absent, unparseable,
// or contains no tags; a missing EXIF block is an expected outcome, never an
// error.
func Map(payload []byte) map[string]any {
	if len(payload) == 0 {
		return nil
	}

	x, err := goexif.Decode(bytes.NewReader(payload))
	if err != nil {
		logger.WithError(err).Debug("EXIF payload could not be decoded")
		return nil
	}
	if x.Tiff == nil || len(x.Tiff.Dirs) == 0 {
		return nil
	}

	tags := map[string]any{}
	gpsInfo := map[string]any{}
	walkDir(x.Tiff.Dirs[0], x, tags, gpsInfo)

	if len(gpsInfo) > 0 {
		tags["GPSInfo"] = gpsInfo
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func walkDir(dir *tiff.Dir, x *goexif.Exif, tags, gpsInfo map[string]any) {
	for _, t := range dir.Tags {
		switch t.Id {
		case tagExifIFD:
			if sub := subDir(x, t); sub != nil {
				walkDir(sub, x, tags, gpsInfo)
			}
		case tagGPSIFD:
			if sub := subDir(x, t); sub != nil {
				for _, g := range sub.Tags {
					gpsInfo[gpsTagName(g.Id)] = tagValue(g)
				}
			}
		default:
			tags[tagName(t.Id)] = tagValue(t)
		}
	}
}

// subDir follows an IFD pointer tag into the raw TIFF block.
func subDir(x *goexif.Exif, t *tiff.Tag) *tiff.Dir {
	offset, err := t.Int64(0)
	if err != nil {
		return nil
	}
	r := bytes.NewReader(x.Raw)
	if _, err := r.Seek(offset, io.SeekStart); err != nil {
		return nil
	}
	dir, _, err := tiff.DecodeDir(r, x.Tiff.Order)
	if err != nil {
		logger.WithError(err).Debug("EXIF sub-IFD could not be decoded")
		return nil
	}
	return dir
}

// tagName resolves a numeric tag ID against the standard dictionary.
// Unresolved IDs pass through as their numeric identifier so nothing is
// silently dropped.
func tagName(id uint16) string {
	if name, ok := tagNames[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

func gpsTagName(id uint16) string {
	if name, ok := gpsTagNames[id]; ok {
		return name
	}
	return strconv.Itoa(int(id))
}

// tagValue converts a raw TIFF tag into a JSON-safe Go value. Rationals keep
// their raw numerator/denominator pairs; byte-valued fields get the shared
// UTF-8-with-hex-fallback treatment.
func tagValue(t *tiff.Tag) any {
	switch t.Format() {
	case tiff.StringVal:
		s, err := t.StringVal()
		if err != nil {
			return metadata.DisplayValue(t.Val)
		}
		return strings.TrimRight(s, " \x00")

	case tiff.IntVal:
		vals := make([]int, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			v, err := t.Int(i)
			if err != nil {
				return metadata.DisplayValue(t.Val)
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals

	case tiff.RatVal:
		rats := make([]metadata.Rational, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			num, den, err := t.Rat2(i)
			if err != nil {
				return metadata.DisplayValue(t.Val)
			}
			rats = append(rats, metadata.Rational{Num: num, Den: den})
		}
		if len(rats) == 1 {
			return rats[0]
		}
		return rats

	case tiff.FloatVal:
		vals := make([]float64, 0, t.Count)
		for i := 0; i < int(t.Count); i++ {
			v, err := t.Float(i)
			if err != nil {
				return metadata.DisplayValue(t.Val)
			}
			vals = append(vals, v)
		}
		if len(vals) == 1 {
			return vals[0]
		}
		return vals

	default:
		// Undefined and unrecognized types carry raw bytes.
		return metadata.DisplayValue(t.Val)
	}
}
