package usecase

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/infrastructure/storage"
	"github.com/wolhaven/atelier/internal/optimizer"
)

type UploadUsecase struct {
	storage   storage.Storage
	queue     domain.QueueService
	opts      optimizer.Options
	maxSizeMB int
	uploadDir string
}

func NewUploadUsecase(
	store storage.Storage,
	queue domain.QueueService,
	opts optimizer.Options,
	maxSizeMB int,
	uploadDir string,
) *UploadUsecase {
	return &UploadUsecase{
		storage:   store,
		queue:     queue,
		opts:      opts,
		maxSizeMB: maxSizeMB,
		uploadDir: uploadDir,
	}
}

func (u *UploadUsecase) Upload(ctx context.Context, filename, mimeType string, data []byte) (*domain.UploadResult, error) {
	file := optimizer.File{
		Name:     filename,
		MimeType: mimeType,
		Data:     data,
	}

	// Size validation looks at the original upload, before optimization.
	if err := optimizer.ValidateSize(file, u.maxSizeMB); err != nil {
		return nil, err
	}

	result, err := optimizer.Optimize(file, u.opts)
	if err != nil {
		return nil, err
	}

	objectPath := path.Join(u.uploadDir, fmt.Sprintf("%s.%s", uuid.New().String(), formatExt(u.opts.Format)))

	url, err := u.storage.Save(ctx, objectPath, bytes.NewReader(result.Data), int64(len(result.Data)), result.MimeType)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("path", objectPath).Msg("failed to store optimized upload")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	// Thumbnail generation happens asynchronously; a queue failure does
	// not fail the upload.
	if err := u.queue.PublishThumbnailTask(ctx, objectPath); err != nil {
		zlog.Logger.Error().Err(err).Str("path", objectPath).Msg("failed to publish thumbnail task")
	}

	zlog.Logger.Info().
		Str("filename", filename).
		Str("path", objectPath).
		Int64("original_size", result.OriginalSize).
		Int64("optimized_size", result.OptimizedSize).
		Msg("upload stored")

	return &domain.UploadResult{
		URL:              url,
		Path:             objectPath,
		MimeType:         result.MimeType,
		OriginalSize:     result.OriginalSize,
		OptimizedSize:    result.OptimizedSize,
		CompressionRatio: result.CompressionRatio,
	}, nil
}

func formatExt(f optimizer.Format) string {
	switch f {
	case optimizer.FormatPNG:
		return "png"
	case optimizer.FormatWebP:
		return "webp"
	default:
		return "jpg"
	}
}
