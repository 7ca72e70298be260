package validate

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/imertcoskun/geoint/pkg/common"
)

// allowedExtensions is the allow-list checked before any decoding is
// attempted. Cheap rejection: the file is never opened here.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// Extension checks the name's extension against the allow-list,
// case-insensitively. Only the name is inspected.
func Extension(name string) error {
	ext := filepath.Ext(name)
	if _, ok := allowedExtensions[strings.ToLower(ext)]; !ok {
		return common.NewValidationError(ext, Allowed())
	}
	return nil
}

// Allowed returns the sorted allow-list of extensions.
func Allowed() []string {
	exts := make([]string, 0, len(allowedExtensions))
	for ext := range allowedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
