package validate

import (
	"errors"
	"testing"

	"github.com/imertcoskun/geoint/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionAllowed(t *testing.T) {
	for _, name := range []string{
		"photo.png",
		"photo.jpg",
		"photo.jpeg",
		"PHOTO.PNG",
		"photo.JpEg",
		"dir/nested/photo.png",
		"archive.tar.jpg",
	} {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, Extension(name))
		})
	}
}

func TestExtensionRejected(t *testing.T) {
	for _, name := range []string{
		"photo.gif",
		"photo.bmp",
		"photo.tiff",
		"photo.webp",
		"photo.txt",
		"photo",
		"photo.png.exe",
	} {
		t.Run(name, func(t *testing.T) {
			err := Extension(name)
			require.Error(t, err)

			var validationErr *common.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, []string{".jpeg", ".jpg", ".png"}, validationErr.Allowed)
		})
	}
}

func TestAllowedIsSorted(t *testing.T) {
	assert.Equal(t, []string{".jpeg", ".jpg", ".png"}, Allowed())
}
