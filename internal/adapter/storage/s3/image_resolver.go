package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/nexus-marketplace/catalog-service/internal/platform/logger"
)

// Options configures the object store that holds listing images.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	URLExpiry time.Duration
}

// ImageResolver turns stored image keys into presigned GET URLs.
type ImageResolver struct {
	client *minio.Client
	bucket string
	expiry time.Duration
	logger *logger.Logger
}

// NewImageResolver connects to the object store and checks that the bucket exists.
func NewImageResolver(ctx context.Context, opts Options, log *logger.Logger) (*ImageResolver, error) {
	log.Info("Initializing S3 MinIO image resolver", zap.String("endpoint", opts.Endpoint), zap.String("bucket", opts.Bucket), zap.Bool("use_ssl", opts.UseSSL))

	client, err := newClient(opts)
	if err != nil {
		log.Error("Failed to create MinIO client", zap.String("endpoint", opts.Endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", opts.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		log.Warn("Image bucket does not exist, references will resolve to missing objects", zap.String("bucket", opts.Bucket))
	}
	return newImageResolver(client, opts, log), nil
}

func newClient(opts Options) (*minio.Client, error) {
	return minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
}

func newImageResolver(client *minio.Client, opts Options, log *logger.Logger) *ImageResolver {
	expiry := opts.URLExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &ImageResolver{
		client: client,
		bucket: opts.Bucket,
		expiry: expiry,
		logger: log.Named("ImageResolver"),
	}
}

// Resolve presigns ref. Absolute http(s) URLs are returned unchanged and
// "s3://bucket/key" references override the default bucket.
func (r *ImageResolver) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("empty image reference")
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref, nil
	}

	bucket, key := r.bucket, strings.TrimPrefix(ref, "/")
	if rest, ok := strings.CutPrefix(ref, "s3://"); ok {
		var found bool
		bucket, key, found = strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return "", fmt.Errorf("malformed s3 reference %q", ref)
		}
	}

	u, err := r.client.PresignedGetObject(ctx, bucket, key, r.expiry, nil)
	if err != nil {
		r.logger.Debug("PresignedGetObject failed", zap.String("bucket", bucket), zap.String("key", key), zap.Error(err))
		return "", fmt.Errorf("failed to presign %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}
