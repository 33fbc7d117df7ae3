// Package blob uploads attachment binaries to an S3-compatible bucket.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"focuswork/internal/logging"
	"focuswork/internal/ports"
)

// MinioStore implements ports.BlobStore on MinIO or any S3 endpoint
type MinioStore struct {
	bucket   string
	client   *minio.Client
	endpoint *url.URL
}

var _ ports.BlobStore = (*MinioStore)(nil)

// Config holds the connection settings
type Config struct {
	AccessKey string
	Bucket    string
	Endpoint  string
	SecretKey string
	UseSSL    bool
}

// NewMinioStore connects and makes sure the bucket exists
func NewMinioStore(ctx context.Context, cfg Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create blob client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
		logging.Logger.Info("Created attachment bucket", "bucket", cfg.Bucket)
	}

	return &MinioStore{
		bucket:   cfg.Bucket,
		client:   client,
		endpoint: client.EndpointURL(),
	}, nil
}

// Upload stores data under key and returns its object URL
func (s *MinioStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return ObjectURL(s.endpoint, s.bucket, key), nil
}

// Delete removes the object; a missing object is not an error
func (s *MinioStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// List returns every object key under prefix
func (s *MinioStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", prefix, obj.Err)
		}
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

// ObjectURL builds the path-style URL of an object
func ObjectURL(endpoint *url.URL, bucket, key string) string {
	u := *endpoint
	u.Path = path.Join("/", bucket, key)
	return u.String()
}
