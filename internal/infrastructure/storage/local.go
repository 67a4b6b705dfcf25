package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/config"
)

type localStorage struct {
	basePath   string
	publicBase string
}

func NewLocalStorage(cfg *config.StorageConfig) (Storage, error) {
	if cfg.LocalPath == "" {
		return nil, fmt.Errorf("LocalPath is empty, set storage.local_path in config or env")
	}

	if err := os.MkdirAll(cfg.LocalPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	publicBase := cfg.PublicBase
	if publicBase == "" {
		publicBase = "/files"
	}

	return &localStorage{
		basePath:   cfg.LocalPath,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}, nil
}

func (s *localStorage) Save(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) (string, error) {
	if reader == nil {
		return "", fmt.Errorf("reader is nil")
	}

	fullPath := filepath.Join(s.basePath, objectPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", fullPath, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", fullPath, err)
	}
	defer file.Close()

	written, err := io.Copy(file, reader)
	if err != nil {
		return "", fmt.Errorf("write file %s: %w", fullPath, err)
	}

	zlog.Logger.Info().Str("path", objectPath).Int64("bytes", written).Msg("file saved")
	return s.PublicURL(objectPath), nil
}

func (s *localStorage) Get(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, objectPath)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
		}
		return nil, fmt.Errorf("open file %s: %w", fullPath, err)
	}

	return file, nil
}

func (s *localStorage) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}

	fullPath := filepath.Join(s.basePath, objectPath)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			zlog.Logger.Warn().Str("path", fullPath).Msg("file not found, skipping delete")
			return nil
		}
		return fmt.Errorf("delete file %s: %w", fullPath, err)
	}

	zlog.Logger.Info().Str("path", objectPath).Msg("file deleted")
	return nil
}

func (s *localStorage) PublicURL(objectPath string) string {
	return s.publicBase + "/" + strings.TrimPrefix(objectPath, "/")
}
