package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/imertcoskun/geoint/internal/analyzer"
	"github.com/imertcoskun/geoint/internal/config"
	"github.com/imertcoskun/geoint/internal/logger"
)

// Archiver stores analyzed images and their results in an S3-compatible
// bucket
type Archiver struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates a new archiver from the archive configuration
func New(ctx context.Context, cfg config.ArchiveConfig) (*Archiver, error) {
	endpoint := cfg.Endpoint
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	if endpoint == "" {
		return nil, fmt.Errorf("archive endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket is required")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", cfg.Bucket)
	}

	return &Archiver{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// Store uploads the image and a JSON sidecar with the analysis result. The
// sidecar shares the image's object key with a .json suffix appended.
func (a *Archiver) Store(ctx context.Context, result *analyzer.AnalysisResult, image []byte) error {
	key := a.objectKey(result.File)

	_, err := a.client.PutObject(ctx, a.bucket, key,
		bytes.NewReader(image), int64(len(image)),
		minio.PutObjectOptions{ContentType: contentType(result.File)})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	sidecar, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result for %s: %w", key, err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, key+".json",
		bytes.NewReader(sidecar), int64(len(sidecar)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload %s.json: %w", key, err)
	}

	logger.WithFields(logrus.Fields{
		"bucket": a.bucket,
		"key":    key,
	}).Info("Archived analysis")
	return nil
}

func (a *Archiver) objectKey(file string) string {
	name := filepath.Base(file)
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}
