// Package ocr wraps the Tesseract OCR engine via gosseract. Tesseract
// must be installed on the host (apt-get install tesseract-ocr, or
// brew install tesseract on macOS).
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes text in an encoded page image. It holds no mutable
// state and is safe for concurrent use; each Recognize call builds its
// own gosseract client.
type Engine struct {
	language string
}

// New returns an Engine configured for single-column body text, the page
// segmentation mode that works best for syllabus scans. language follows
// Tesseract conventions ("eng", "eng+fra", ...).
func New(language string) *Engine {
	if language == "" {
		language = "eng"
	}
	return &Engine{language: language}
}

// Recognize runs OCR on imageData (TIFF, PNG, JPEG, ...) and returns the
// recognized text with surrounding whitespace trimmed. The call is bounded
// by ctx: on cancellation it returns ctx.Err() while the underlying
// Tesseract call finishes in the background, since Tesseract itself cannot
// be interrupted mid-page.
//
// A fresh gosseract client is created per call; the client type is not
// safe for concurrent use and page workers run in parallel.
func (e *Engine) Recognize(ctx context.Context, imageData []byte) (string, error) {
	type result struct {
		text string
		err  error
	}
	ch := make(chan result, 1)

	go func() {
		text, err := recognizeOnce(e.language, imageData)
		ch <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.text, r.err
	}
}

func recognizeOnce(language string, imageData []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("set language %q: %w", language, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_COLUMN); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}
