package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/wb-go/wbf/zlog"

	"github.com/wolhaven/atelier/internal/infrastructure/storage"
	"github.com/wolhaven/atelier/internal/optimizer"
)

type ThumbnailUsecase struct {
	storage  storage.Storage
	opts     optimizer.Options
	thumbDir string
}

func NewThumbnailUsecase(store storage.Storage, opts optimizer.Options, thumbDir string) *ThumbnailUsecase {
	return &ThumbnailUsecase{
		storage:  store,
		opts:     opts,
		thumbDir: thumbDir,
	}
}

// GenerateThumbnail fetches a stored original, optimizes it down to
// thumbnail bounds and stores it next to the original under the thumb
// directory.
func (u *ThumbnailUsecase) GenerateThumbnail(ctx context.Context, objectPath string) error {
	reader, err := u.storage.Get(ctx, objectPath)
	if err != nil {
		return fmt.Errorf("get original %s: %w", objectPath, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("read original %s: %w", objectPath, err)
	}

	file := optimizer.File{
		Name:     path.Base(objectPath),
		MimeType: mimeFromExt(objectPath),
		Data:     data,
	}

	result, err := optimizer.Optimize(file, u.opts)
	if err != nil {
		return fmt.Errorf("optimize thumbnail for %s: %w", objectPath, err)
	}

	base := strings.TrimSuffix(path.Base(objectPath), path.Ext(objectPath))
	thumbPath := path.Join(u.thumbDir, fmt.Sprintf("%s_thumb.%s", base, formatExt(u.opts.Format)))

	if _, err := u.storage.Save(ctx, thumbPath, bytes.NewReader(result.Data), int64(len(result.Data)), result.MimeType); err != nil {
		return fmt.Errorf("store thumbnail %s: %w", thumbPath, err)
	}

	zlog.Logger.Info().
		Str("original", objectPath).
		Str("thumbnail", thumbPath).
		Int("width", result.Width).
		Int("height", result.Height).
		Msg("thumbnail generated")

	return nil
}

func mimeFromExt(p string) string {
	switch strings.ToLower(path.Ext(p)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
