package transport

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imertcoskun/geoint/internal/analyzer"
	"github.com/imertcoskun/geoint/internal/imagetest"
)

func multipartUpload(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func postAnalyze(t *testing.T, h *Handler, field, filename string, payload []byte) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := multipartUpload(t, field, filename, payload)
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeUpload(t *testing.T) {
	data := imagetest.BuildPNG(t, imagetest.PNGOptions{
		Width:     640,
		Height:    480,
		ColorType: imagetest.PNGTruecolor,
	})

	h := NewHandler(32 << 20)
	rec := postAnalyze(t, h, "image", "photo.png", data)

	require.Equal(t, http.StatusOK, rec.Code)

	var result analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "photo.png", result.File)
	assert.Equal(t, "PNG", result.Metadata.Format)
	assert.Equal(t, uint(640), result.Metadata.Size.Width)
	assert.Contains(t, result.Summary, "No EXIF metadata found.")
}

func TestAnalyzeUploadSanitizesFilename(t *testing.T) {
	data := imagetest.BuildPNG(t, imagetest.PNGOptions{
		Width:     8,
		Height:    8,
		ColorType: imagetest.PNGGray,
	})

	h := NewHandler(32 << 20)
	rec := postAnalyze(t, h, "image", "..\\..\\tmp\\e vil$.png", data)

	require.Equal(t, http.StatusOK, rec.Code)

	var result analyzer.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "e_vil_.png", result.File)
}

func TestAnalyzeMissingFile(t *testing.T) {
	h := NewHandler(32 << 20)
	rec := postAnalyze(t, h, "attachment", "photo.png", []byte("ignored"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "No image file provided.", resp.Error)
}

func TestAnalyzeRejectedExtension(t *testing.T) {
	h := NewHandler(32 << 20)
	rec := postAnalyze(t, h, "image", "clip.gif", []byte("GIF89a"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, `unsupported file type ".gif"`)
}

func TestAnalyzeInvalidImage(t *testing.T) {
	h := NewHandler(32 << 20)
	rec := postAnalyze(t, h, "image", "photo.jpg", []byte("definitely not an image"))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "file is not a valid PNG or JPEG image", resp.Error)
}

func TestAnalyzeUploadTooLarge(t *testing.T) {
	data := imagetest.BuildPNG(t, imagetest.PNGOptions{
		Width:     8,
		Height:    8,
		ColorType: imagetest.PNGGray,
	})

	h := NewHandler(16)
	rec := postAnalyze(t, h, "image", "photo.png", data)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Uploaded file is too large.", resp.Error)
}

func TestIndexPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	NewHandler(0).Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `enctype="multipart/form-data"`)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	NewHandler(0).Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd.png", "passwd.png"},
		{"C:\\Users\\me\\pic.jpeg", "pic.jpeg"},
		{"with space & symbols!.png", "with_space_symbols_.png"},
		{"...", "upload"},
		{"", "upload"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeFilename(tt.in), "input %q", tt.in)
	}
}
