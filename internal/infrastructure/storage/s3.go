package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/config"
)

type s3Storage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewS3Storage(cfg *config.StorageConfig) (Storage, error) {
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize s3 client: %w", err)
	}

	// Create the bucket when it does not exist yet.
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.S3Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check s3 bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.S3Bucket, minio.MakeBucketOptions{Region: cfg.S3Region}); err != nil {
			zlog.Logger.Warn().Err(err).Str("bucket", cfg.S3Bucket).Msg("unable to create bucket, ensure it exists and credentials are correct")
		} else {
			zlog.Logger.Info().Str("bucket", cfg.S3Bucket).Msg("created s3 bucket")
		}
	}

	publicBase := cfg.PublicBase
	if publicBase == "" {
		scheme := "http"
		if cfg.S3UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.S3Endpoint, cfg.S3Bucket)
	}

	return &s3Storage{
		client:     client,
		bucket:     cfg.S3Bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *s3Storage) Save(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	if reader == nil {
		return "", fmt.Errorf("reader is nil")
	}

	_, err := s.client.PutObject(ctx, s.bucket, objectPath, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		zlog.Logger.Error().Err(err).Str("object", objectPath).Msg("failed to put object to s3")
		return "", fmt.Errorf("put object %s: %w", objectPath, err)
	}

	zlog.Logger.Info().Str("path", objectPath).Str("content_type", contentType).Msg("object saved to s3")
	return s.PublicURL(objectPath), nil
}

func (s *s3Storage) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectPath, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", objectPath, err)
	}

	if _, err := obj.Stat(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	}

	return obj, nil
}

func (s *s3Storage) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectPath, minio.RemoveObjectOptions{}); err != nil {
		zlog.Logger.Error().Err(err).Str("path", objectPath).Msg("failed to delete object from s3")
		return fmt.Errorf("remove object %s: %w", objectPath, err)
	}
	zlog.Logger.Info().Str("path", objectPath).Msg("object deleted from s3")
	return nil
}

func (s *s3Storage) PublicURL(objectPath string) string {
	return s.publicBase + "/" + strings.TrimPrefix(objectPath, "/")
}
