package optimizer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolhaven/atelier/internal/domain"
)

func encodeTestImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, format))
	return buf.Bytes()
}

func TestOptimize_RejectsNonImage(t *testing.T) {
	_, err := Optimize(File{Name: "doc.pdf", MimeType: "application/pdf", Data: []byte("%PDF")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "file must be an image")
}

func TestOptimize_DecodeFailure(t *testing.T) {
	_, err := Optimize(File{Name: "broken.jpg", MimeType: "image/jpeg", Data: []byte("not an image")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDecodeFailed)
}

func TestOptimize_NoResizeBelowBound(t *testing.T) {
	data := encodeTestImage(t, 640, 480, imaging.JPEG)

	res, err := Optimize(File{Name: "small.jpg", MimeType: "image/jpeg", Data: data}, Options{MaxWidth: 1920, MaxHeight: 1920})
	require.NoError(t, err)

	assert.Equal(t, 640, res.Width)
	assert.Equal(t, 480, res.Height)
	assert.Equal(t, "image/jpeg", res.MimeType)
	assert.Equal(t, "small.jpg", res.Name)
}

func TestOptimize_ResizesLandscape(t *testing.T) {
	data := encodeTestImage(t, 4000, 2000, imaging.JPEG)

	res, err := Optimize(File{Name: "wide.jpg", MimeType: "image/jpeg", Data: data}, Options{MaxWidth: 1920, MaxHeight: 1920})
	require.NoError(t, err)

	assert.Equal(t, 1920, res.Width)
	assert.Equal(t, 960, res.Height)
}

func TestOptimize_ResizesPortrait(t *testing.T) {
	data := encodeTestImage(t, 1000, 4000, imaging.JPEG)

	res, err := Optimize(File{Name: "tall.jpg", MimeType: "image/jpeg", Data: data}, Options{MaxWidth: 1920, MaxHeight: 1920})
	require.NoError(t, err)

	assert.Equal(t, 1920, res.Height)
	assert.Equal(t, 480, res.Width)
}

func TestOptimize_PNGOutputIgnoresQuality(t *testing.T) {
	data := encodeTestImage(t, 100, 100, imaging.JPEG)

	res, err := Optimize(File{Name: "pic.jpg", MimeType: "image/jpeg", Data: data}, Options{Format: FormatPNG, Quality: 0.1})
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MimeType)
}

func TestOptimize_RatioCanBeNegative(t *testing.T) {
	// A tiny solid PNG compresses far below the fixed JPEG header
	// overhead, so re-encoding it as JPEG enlarges the file.
	img := imaging.New(10, 10, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))

	res, err := Optimize(File{Name: "dot.png", MimeType: "image/png", Data: buf.Bytes()}, Options{Format: FormatJPEG, Quality: 0.8})
	require.NoError(t, err)

	assert.Less(t, res.CompressionRatio, 0.0)
	assert.Greater(t, res.OptimizedSize, res.OriginalSize)
}

func TestValidateSize(t *testing.T) {
	small := File{Name: "a.jpg", MimeType: "image/jpeg", Data: make([]byte, 1024)}
	assert.NoError(t, ValidateSize(small, 10))

	big := File{Name: "b.jpg", MimeType: "image/jpeg", Data: make([]byte, 2*1024*1024)}
	err := ValidateSize(big, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestOptimizeMany_AllOrNothing(t *testing.T) {
	good := File{Name: "ok.jpg", MimeType: "image/jpeg", Data: encodeTestImage(t, 50, 50, imaging.JPEG)}
	bad := File{Name: "bad.jpg", MimeType: "image/jpeg", Data: []byte("garbage")}

	results, err := OptimizeMany(context.Background(), []File{good, bad}, Options{})
	require.Error(t, err)
	assert.Nil(t, results)

	results, err = OptimizeMany(context.Background(), []File{good, good, good}, Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.Equal(t, "ok.jpg", res.Name)
	}
}

func TestTargetSize_LongSideBound(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		w := 1 + rng.Intn(8000)
		h := 1 + rng.Intn(8000)
		maxW := 100 + rng.Intn(3000)
		maxH := 100 + rng.Intn(3000)

		tw, th := targetSize(w, h, maxW, maxH)

		if w <= maxW && h <= maxH {
			assert.Equal(t, w, tw)
			assert.Equal(t, h, th)
			continue
		}

		longer := math.Max(float64(tw), float64(th))
		bound := math.Max(float64(maxW), float64(maxH))
		assert.LessOrEqual(t, longer, bound+1, "w=%d h=%d maxW=%d maxH=%d", w, h, maxW, maxH)

		// Rounding dominates the aspect ratio when the short axis
		// collapses to a handful of pixels, so only check above that.
		if tw >= 20 && th >= 20 {
			gotAspect := float64(tw) / float64(th)
			wantAspect := float64(w) / float64(h)
			assert.InEpsilon(t, wantAspect, gotAspect, 0.1, "w=%d h=%d", w, h)
		}
	}
}

func TestTargetSize_RoundsHalfUp(t *testing.T) {
	// 4000x2999 bounded to 1920: scale by width, height = 1920/(4000/2999) = 1439.52 → 1440.
	tw, th := targetSize(4000, 2999, 1920, 1920)
	assert.Equal(t, 1920, tw)
	assert.Equal(t, 1440, th)
}
