// Package ocrprep normalizes rasterized page images before they are fed
// to the OCR engine: grayscale conversion, contrast boost, and a fixed
// luminance threshold producing a strict two-level image.
package ocrprep

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/tiff"
)

const (
	// DefaultContrast is the contrast multiplier applied relative to the
	// grayscale image's mean luminance. Tuned against typical syllabus
	// scans rather than derived from image statistics.
	DefaultContrast = 2.0

	// DefaultThreshold is the binarization cutoff on a 0-255 scale:
	// pixels below it become ink (0), the rest paper (255).
	DefaultThreshold = 140
)

// Binarize converts src to grayscale, scales its contrast by the given
// multiplier around the image's mean luminance, and applies a per-pixel
// threshold. The result contains only the values 0 and 255. Binarize is
// deterministic and never modifies src.
func Binarize(src image.Image, contrast float64, threshold uint8) *image.Gray {
	gray := toGray(src)
	mean := meanLuminance(gray)

	out := image.NewGray(gray.Bounds())
	for i, px := range gray.Pix {
		v := mean + (float64(px)-mean)*contrast
		if v < float64(threshold) {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out
}

// EncodeTIFF serializes a preprocessed image for the OCR engine, which
// consumes image bytes rather than in-memory pixels.
func EncodeTIFF(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return nil, fmt.Errorf("encode tiff: %w", err)
	}
	return buf.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok && g.Stride == g.Rect.Dx() {
		return g
	}
	b := src.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return gray
}

func meanLuminance(g *image.Gray) float64 {
	if len(g.Pix) == 0 {
		return 0
	}
	var sum uint64
	for _, px := range g.Pix {
		sum += uint64(px)
	}
	return float64(sum) / float64(len(g.Pix))
}
