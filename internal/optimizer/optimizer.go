package optimizer

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/sync/errgroup"

	// Registers the WebP decoder with image.Decode.
	_ "golang.org/x/image/webp"

	"github.com/wolhaven/atelier/internal/domain"
)

type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

const (
	DefaultMaxWidth  = 1920
	DefaultMaxHeight = 1920
	DefaultQuality   = 0.8
	DefaultMaxSizeMB = 10
)

// File is a single in-memory upload before optimization.
type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// Options controls one optimization pass. Zero values fall back to the
// package defaults so callers can override fields independently.
type Options struct {
	MaxWidth  int
	MaxHeight int
	Quality   float64
	Format    Format
}

func (o Options) withDefaults() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.MaxHeight <= 0 {
		o.MaxHeight = DefaultMaxHeight
	}
	if o.Quality <= 0 || o.Quality > 1 {
		o.Quality = DefaultQuality
	}
	switch o.Format {
	case FormatJPEG, FormatPNG, FormatWebP:
	default:
		o.Format = FormatJPEG
	}
	return o
}

// Result is the optimized output plus reporting metadata.
type Result struct {
	Name          string
	MimeType      string
	Data          []byte
	Width         int
	Height        int
	OriginalSize  int64
	OptimizedSize int64
	// CompressionRatio is (original-optimized)/original*100 and can be
	// negative when re-encoding enlarges the file.
	CompressionRatio float64
}

// ValidateSize rejects files whose original size exceeds maxSizeMB.
// This check runs before optimization and looks only at the
// pre-optimization byte size.
func ValidateSize(file File, maxSizeMB int) error {
	if maxSizeMB <= 0 {
		maxSizeMB = DefaultMaxSizeMB
	}
	limit := int64(maxSizeMB) * 1024 * 1024
	if int64(len(file.Data)) > limit {
		return fmt.Errorf("%w: file exceeds %d MB", domain.ErrValidation, maxSizeMB)
	}
	return nil
}

// Optimize resizes and re-encodes a single image under the configured
// bounds, preserving the aspect ratio and the logical file name.
func Optimize(file File, opts Options) (*Result, error) {
	if !strings.HasPrefix(file.MimeType, "image/") {
		return nil, fmt.Errorf("%w: file must be an image", domain.ErrValidation)
	}

	opts = opts.withDefaults()

	img, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		zlog.Logger.Error().Err(err).Str("filename", file.Name).Msg("failed to decode image")
		return nil, fmt.Errorf("%w: %v", domain.ErrDecodeFailed, err)
	}

	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: decoded image is empty", domain.ErrDecodeFailed)
	}

	targetW, targetH := targetSize(w, h, opts.MaxWidth, opts.MaxHeight)
	if targetW != w || targetH != h {
		img = imaging.Resize(img, targetW, targetH, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatPNG:
		// PNG is lossless, the quality setting does not apply.
		err = imaging.Encode(&buf, img, imaging.PNG)
	case FormatWebP:
		err = webp.Encode(&buf, img, &webp.Options{Quality: float32(opts.Quality * 100)})
	default:
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(int(math.Round(opts.Quality*100))))
	}
	if err != nil {
		zlog.Logger.Error().Err(err).Str("filename", file.Name).Str("format", string(opts.Format)).Msg("failed to encode image")
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodeFailed, err)
	}

	originalSize := int64(len(file.Data))
	optimizedSize := int64(buf.Len())

	result := &Result{
		Name:             file.Name,
		MimeType:         "image/" + string(opts.Format),
		Data:             buf.Bytes(),
		Width:            img.Bounds().Dx(),
		Height:           img.Bounds().Dy(),
		OriginalSize:     originalSize,
		OptimizedSize:    optimizedSize,
		CompressionRatio: float64(originalSize-optimizedSize) / float64(originalSize) * 100,
	}

	zlog.Logger.Info().
		Str("filename", file.Name).
		Int("width", result.Width).
		Int("height", result.Height).
		Int64("original_size", originalSize).
		Int64("optimized_size", optimizedSize).
		Float64("compression_ratio", result.CompressionRatio).
		Msg("image optimized")

	return result, nil
}

// OptimizeMany optimizes a batch in parallel. The batch is
// all-or-nothing: any single failure fails the whole call.
func OptimizeMany(ctx context.Context, files []File, opts Options) ([]*Result, error) {
	results := make([]*Result, len(files))

	g, _ := errgroup.WithContext(ctx)
	for idx, f := range files {
		g.Go(func() error {
			res, err := Optimize(f, opts)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// targetSize applies the longer-side scale rule: when the image exceeds
// either bound, only the bound of the longer absolute dimension drives
// the scale factor and the short axis follows the aspect ratio. The
// short axis is intentionally not clamped against its own bound
// afterwards; with a non-square bound and near-square input this can
// leave it marginally over the limit after rounding.
func targetSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}

	aspect := float64(w) / float64(h)
	var fw, fh float64
	if w > h {
		fw = math.Min(float64(w), float64(maxW))
		fh = fw / aspect
	} else {
		fh = math.Min(float64(h), float64(maxH))
		fw = fh * aspect
	}

	return roundHalfUp(fw), roundHalfUp(fh)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
