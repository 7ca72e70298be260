package container

// Sniff determines the container format of data from its magic bytes.
// Returns the empty string when no known signature matches.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "JPEG"

	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "PNG"

	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "GIF"

	case len(data) >= 2 && string(data[:2]) == "BM":
		return "BMP"

	case len(data) >= 4 && (string(data[:4]) == "II*\x00" || string(data[:4]) == "MM\x00*"):
		return "TIFF"

	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "WEBP"
	}
	return ""
}
