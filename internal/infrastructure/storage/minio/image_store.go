package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const (
	objectPrefix = "gallery"
	setupTimeout = 10 * time.Second
)

// publicReadPolicy lets browsers fetch gallery images without credentials.
// extensions maps the sniffed content types the gallery accepts to the
// extension used in object keys.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/%s/*"]}]}`

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the externally reachable base of the object store. It
	// defaults to the endpoint.
	PublicURL string
}

// ImageStore uploads gallery images to an S3 compatible bucket.
type ImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewImageStore connects to the object store and makes sure the bucket
// exists with public read access on gallery objects.
func NewImageStore(ctx context.Context, cfg Config) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}
	if err := client.SetBucketPolicy(ctx, cfg.Bucket, fmt.Sprintf(publicReadPolicy, cfg.Bucket, objectPrefix)); err != nil {
		return nil, fmt.Errorf("set bucket policy: %w", err)
	}

	return &ImageStore{client: client, bucket: cfg.Bucket, baseURL: baseURL(cfg)}, nil
}

// Upload stores body under a fresh key and returns its public URL. The key's
// extension follows contentType; the client's filename is not trusted.
func (s *ImageStore) Upload(ctx context.Context, _ string, contentType string, body io.Reader, size int64) (string, error) {
	key := objectKey(contentType)
	_, err := s.client.PutObject(ctx, s.bucket, key, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.baseURL + "/" + s.bucket + "/" + key, nil
}

func objectKey(contentType string) string {
	return path.Join(objectPrefix, uuid.NewString()+extensions[contentType])
}

func baseURL(cfg Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}
