package exif

import (
	"testing"

	"github.com/imertcoskun/geoint/internal/imagetest"
	"github.com/imertcoskun/geoint/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapResolvesTagNames(t *testing.T) {
	payload := imagetest.BuildEXIF(
		[]imagetest.Entry{
			imagetest.ASCII(0x010f, "TestCam"),
			imagetest.ASCII(0x0110, "Model X"),
			imagetest.ASCII(0x010e, "Holiday photo"),
			imagetest.Short(0x0112, 1),
		},
		[]imagetest.Entry{
			imagetest.ASCII(0x9003, "2023:06:01 10:00:00"),
		},
		nil,
	)

	tags := Map(payload)
	require.NotNil(t, tags)
	assert.Equal(t, "TestCam", tags["Make"])
	assert.Equal(t, "Model X", tags["Model"])
	assert.Equal(t, "Holiday photo", tags["ImageDescription"])
	assert.Equal(t, 1, tags["Orientation"])

	// Exif sub-IFD tags flatten into the top-level mapping.
	assert.Equal(t, "2023:06:01 10:00:00", tags["DateTimeOriginal"])

	_, hasGPS := tags["GPSInfo"]
	assert.False(t, hasGPS)
}

func TestMapUnknownTagKeepsNumericKey(t *testing.T) {
	payload := imagetest.BuildEXIF([]imagetest.Entry{
		imagetest.Short(0xbeef, 7),
	}, nil, nil)

	tags := Map(payload)
	require.NotNil(t, tags)
	assert.Equal(t, 7, tags["48879"])
}

func TestMapRoutesGPSTagsIntoNestedBlock(t *testing.T) {
	lat := []imagetest.Rat{{Num: 40, Den: 1}, {Num: 26, Den: 1}, {Num: 4614, Den: 100}}
	lon := []imagetest.Rat{{Num: 79, Den: 1}, {Num: 58, Den: 1}, {Num: 5640, Den: 100}}
	payload := imagetest.BuildEXIF(
		[]imagetest.Entry{imagetest.ASCII(0x010f, "TestCam")},
		nil,
		imagetest.GPSIFD(lat, "N", lon, "W"),
	)

	tags := Map(payload)
	require.NotNil(t, tags)

	gpsInfo, ok := tags["GPSInfo"].(map[string]any)
	require.True(t, ok, "GPSInfo should be a nested mapping")
	assert.Equal(t, "N", gpsInfo["GPSLatitudeRef"])
	assert.Equal(t, "W", gpsInfo["GPSLongitudeRef"])
	assert.Equal(t, []metadata.Rational{
		{Num: 40, Den: 1}, {Num: 26, Den: 1}, {Num: 4614, Den: 100},
	}, gpsInfo["GPSLatitude"])

	// GPS tags never leak into the flat table.
	_, flat := tags["GPSLatitude"]
	assert.False(t, flat)
}

func TestMapRationalValuesKeepRawPairs(t *testing.T) {
	payload := imagetest.BuildEXIF(nil, []imagetest.Entry{
		imagetest.Rational(0x829a, imagetest.Rat{Num: 1, Den: 250}),
	}, nil)

	tags := Map(payload)
	require.NotNil(t, tags)
	assert.Equal(t, metadata.Rational{Num: 1, Den: 250}, tags["ExposureTime"])
}

func TestMapByteValues(t *testing.T) {
	payload := imagetest.BuildEXIF([]imagetest.Entry{
		imagetest.Undefined(0x927c, []byte{0xff, 0xfe, 0x00, 0x01, 0x02, 0x03}),
		imagetest.Undefined(0x9286, []byte("ASCII\x00\x00\x00a remark")),
	}, nil, nil)

	tags := Map(payload)
	require.NotNil(t, tags)
	// Binary maker note falls back to lowercase hex.
	assert.Equal(t, "fffe00010203", tags["MakerNote"])
	// Decodable user comment stays text.
	assert.Contains(t, tags["UserComment"], "a remark")
}

func TestMapEmptyOrInvalidPayload(t *testing.T) {
	assert.Nil(t, Map(nil))
	assert.Nil(t, Map([]byte{}))
	assert.Nil(t, Map([]byte("not a tiff block")))
}
