package worker

import (
	"context"

	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/domain"
	"github.com/wolhaven/atelier/internal/dto"
)

type ThumbnailWorker struct {
	thumbnails domain.ThumbnailService
}

func NewThumbnailWorker(thumbnails domain.ThumbnailService) *ThumbnailWorker {
	return &ThumbnailWorker{thumbnails: thumbnails}
}

// HandleThumbnailTask processes one queued thumbnail task.
func (w *ThumbnailWorker) HandleThumbnailTask(ctx context.Context, task *dto.ThumbnailTask) error {
	zlog.Logger.Info().Str("object_path", task.ObjectPath).Msg("processing thumbnail task")
	return w.thumbnails.GenerateThumbnail(ctx, task.ObjectPath)
}
