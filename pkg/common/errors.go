package common

import (
	"fmt"
	"strings"
)

// NotFoundError indicates the input path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// ValidationError indicates a filename extension outside the allow-list.
// The file itself was never opened.
type ValidationError struct {
	Extension string
	Allowed   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("unsupported file type %q; allowed extensions: %s",
		e.Extension, strings.Join(e.Allowed, ", "))
}

// UnsupportedFormatError indicates the decoded container signature is a
// recognized image format outside the allowed set. The extension passed
// validation, so the extension was mismatched or spoofed.
type UnsupportedFormatError struct {
	Detected string
	Allowed  []string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("file signature indicates unsupported format %q; allowed formats: %s",
		e.Detected, strings.Join(e.Allowed, ", "))
}

// InvalidImageError indicates bytes that match no known image container.
type InvalidImageError struct{}

func (e *InvalidImageError) Error() string {
	return "file is not a valid PNG or JPEG image"
}

func NewNotFoundError(path string) error {
	return &NotFoundError{Path: path}
}

func NewValidationError(extension string, allowed []string) error {
	return &ValidationError{Extension: extension, Allowed: allowed}
}

func NewUnsupportedFormatError(detected string, allowed []string) error {
	return &UnsupportedFormatError{Detected: detected, Allowed: allowed}
}

func NewInvalidImageError() error {
	return &InvalidImageError{}
}
