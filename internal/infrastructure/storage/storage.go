package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/config"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage stores optimized upload objects and resolves their public URLs.
type Storage interface {
	Save(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error)
	Get(ctx context.Context, objectPath string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectPath string) error
	PublicURL(objectPath string) string
}

func New(cfg *config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local":
		zlog.Logger.Info().Msg("Initializing local storage")
		return NewLocalStorage(cfg)
	case "s3":
		zlog.Logger.Info().Msg("Initializing S3 storage")
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
