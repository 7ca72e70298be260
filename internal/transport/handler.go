package transport

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/imertcoskun/geoint/internal/analyzer"
	"github.com/imertcoskun/geoint/internal/logger"
	"github.com/imertcoskun/geoint/pkg/common"
)

const indexPage = `<!DOCTYPE html>
<html>
<head><title>geoint</title></head>
<body>
<h1>Image metadata analysis</h1>
<form action="/analyze" method="post" enctype="multipart/form-data">
  <input type="file" name="image" accept=".png,.jpg,.jpeg">
  <input type="submit" value="Analyze">
</form>
</body>
</html>
`

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ErrorResponse represents the error payload returned to clients
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the HTTP analysis API
type Handler struct {
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(maxUploadBytes int64) *Handler {
	return &Handler{maxUploadBytes: maxUploadBytes}
}

// Router builds the gin engine with all routes registered
func (h *Handler) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", h.index)
	router.GET("/health", h.health)
	router.POST("/analyze", h.analyze)

	return router
}

func (h *Handler) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, indexPage)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No image file provided."})
		return
	}
	defer file.Close()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Uploaded file is too large."})
		return
	}

	name := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WithError(err).Error("Failed to read upload")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read uploaded file."})
		return
	}

	result, err := analyzer.AnalyzeBytes(data, name)
	if err != nil {
		var (
			validation  *common.ValidationError
			unsupported *common.UnsupportedFormatError
			invalid     *common.InvalidImageError
		)
		switch {
		case errors.As(err, &validation), errors.As(err, &unsupported), errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.WithError(err).WithField("file", name).Error("Analysis failed")
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}

	logger.WithFields(logrus.Fields{
		"file":   name,
		"format": result.Metadata.Format,
	}).Info("Upload analyzed")

	c.JSON(http.StatusOK, result)
}

// sanitizeFilename reduces a client-supplied filename to a safe base name.
// Backslashes are treated as separators since Windows browsers may send full
// paths.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		return "upload"
	}
	return name
}
