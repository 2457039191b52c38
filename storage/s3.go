// Package storage provides FileStorage implementations that presign object
// paths for the Photoshop API.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	client "github.com/hsn0918/psapi-client"
)

const (
	defaultRegion = "us-east-1"
	// Bounds accepted by S3 for presigned URL expiry.
	minPresignExpiry = time.Second
	maxPresignExpiry = 7 * 24 * time.Hour
)

var ErrEmptyPath = errors.New("object path cannot be empty")

type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Storage presigns paths as objects of a single S3 compatible bucket.
type S3Storage struct {
	client *minio.Client
	bucket string
}

var _ client.FileStorage = (*S3Storage)(nil)

func NewS3Storage(cfg S3Config) (*S3Storage, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3Storage{client: mc, bucket: bucket}, nil
}

// Bucket returns the bucket paths are resolved against.
func (s *S3Storage) Bucket() string {
	return s.bucket
}

// GeneratePresignURL returns a GET URL for read permissions and a PUT URL
// for anything that allows writing.
func (s *S3Storage) GeneratePresignURL(ctx context.Context, path string, opts client.PresignOptions) (string, error) {
	key := objectKey(path)
	if key == "" {
		return "", ErrEmptyPath
	}

	expiry := clampExpiry(opts.Expiry)

	var presign func(context.Context, string, string, time.Duration) (string, error)
	switch opts.Permissions {
	case client.PermissionsRead, "":
		presign = s.presignGet
	default:
		presign = s.presignPut
	}

	u, err := presign(ctx, s.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, key, err)
	}
	return u, nil
}

func (s *S3Storage) presignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func (s *S3Storage) presignPut(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, bucket, key, expiry)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

func objectKey(path string) string {
	return strings.TrimLeft(strings.TrimSpace(path), "/")
}

func clampExpiry(expiry time.Duration) time.Duration {
	switch {
	case expiry <= 0:
		return client.DefaultPresignExpiry
	case expiry < minPresignExpiry:
		return minPresignExpiry
	case expiry > maxPresignExpiry:
		return maxPresignExpiry
	default:
		return expiry
	}
}
