package metadata

import (
	"encoding/hex"
	"unicode/utf8"
)

// DisplayValue renders a raw byte value as text when it is valid UTF-8 and
// as a lowercase hexadecimal string otherwise. Binary payloads such as ICC
// profiles survive without mangling while output stays JSON-safe. The same
// policy applies to container info entries and EXIF byte values.
func DisplayValue(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return hex.EncodeToString(b)
}
