package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"inkwell/internal/config"
	"inkwell/internal/core/apperr"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	// PublicURL prefixes returned object URLs, e.g. a CDN. Defaults to the endpoint.
	PublicURL string
}

// MinioStore uploads avatars and featured images to a MinIO bucket.
type MinioStore struct {
	cfg    Config
	client *minio.Client
}

func NewMinioStore(cfg Config) (*MinioStore, error) {
	client, err := minio.New(strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	return &MinioStore{cfg: cfg, client: client}, nil
}

// EnsureBucket creates the bucket on first start.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("make bucket: %w", err)
	}
	config.Logger.Info("Created bucket", zap.String("bucket", s.cfg.Bucket))
	return nil
}

func (s *MinioStore) Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return objectURL(s.cfg, objectName), nil
}

func objectURL(cfg Config, objectName string) string {
	prefix := strings.TrimRight(cfg.PublicURL, "/")
	if prefix == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
		prefix = scheme + "://" + host
	}
	return prefix + "/" + cfg.Bucket + "/" + objectName
}

// Disabled rejects uploads when no object store is configured.
type Disabled struct{}

func (Disabled) Put(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", apperr.BadRequest("File uploads are not configured")
}
