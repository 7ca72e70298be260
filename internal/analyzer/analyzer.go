// Package analyzer sequences the extraction pipeline: extension validation,
// container decoding, EXIF tag mapping, GPS coordinate derivation, and
// summary generation.
package analyzer

import (
	"fmt"
	"os"

	"github.com/imertcoskun/geoint/internal/container"
	"github.com/imertcoskun/geoint/internal/exif"
	"github.com/imertcoskun/geoint/internal/gps"
	"github.com/imertcoskun/geoint/internal/logger"
	"github.com/imertcoskun/geoint/internal/metadata"
	"github.com/imertcoskun/geoint/internal/summary"
	"github.com/imertcoskun/geoint/internal/validate"
	"github.com/imertcoskun/geoint/pkg/common"
	"github.com/sirupsen/logrus"
)

// AnalysisResult represents the outcome of analyzing one image. Constructed
// once per call and not mutated afterwards; results are never persisted by
// the pipeline itself.
type AnalysisResult struct {
	File     string                 `json:"file"`
	Metadata metadata.ImageMetadata `json:"metadata"`
	Summary  string                 `json:"summary"`
}

// Analyze validates and analyzes the image file at path. Stage failures
// propagate unchanged: NotFoundError, ValidationError,
// UnsupportedFormatError or InvalidImageError, with no partial result.
func Analyze(path string) (*AnalysisResult, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, common.NewNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := validate.Extension(path); err != nil {
		return nil, err
	}

	// Reading up front keeps the file handle lifecycle trivial: it is
	// released here on every exit path.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return analyze(data, path)
}

// AnalyzeBytes analyzes an in-memory image. name is the claimed filename; it
// drives extension validation and is reported back in the result.
func AnalyzeBytes(data []byte, name string) (*AnalysisResult, error) {
	if err := validate.Extension(name); err != nil {
		return nil, err
	}
	return analyze(data, name)
}

func analyze(data []byte, name string) (*AnalysisResult, error) {
	img, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	meta := metadata.ImageMetadata{
		Format: img.Format,
		Mode:   img.Mode,
		Size:   metadata.Size{Width: img.Width, Height: img.Height},
		Info:   img.Info,
	}

	if tags := exif.Map(img.Exif); tags != nil {
		if gpsInfo, ok := tags["GPSInfo"].(map[string]any); ok {
			if coords, ok := gps.Convert(gpsInfo); ok {
				tags["GPSCoordinates"] = coords
			}
		}
		meta.Exif = tags
	}

	logger.WithFields(logrus.Fields{
		"file":      name,
		"format":    meta.Format,
		"exif_tags": len(meta.Exif),
	}).Debug("Image analyzed")

	return &AnalysisResult{
		File:     name,
		Metadata: meta,
		Summary:  summary.Build(meta),
	}, nil
}
