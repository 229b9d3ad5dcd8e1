package acquire

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/coursekit/syllex/internal/ocrprep"
	"github.com/coursekit/syllex/internal/raster"
)

// Recognizer turns an encoded page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, imageData []byte) (string, error)
}

// PDFAcquirer reads a PDF's embedded text layer and falls back to OCR
// when the layer is empty or is raw container bytes rather than real
// text. OCR is strictly a fallback: documents with a usable text layer
// never touch the rasterizer.
type PDFAcquirer struct {
	Raster raster.Rasterizer
	OCR    Recognizer

	// DPI is the rasterization resolution for the OCR path. 400 balances
	// recognition accuracy against processing time for typical scans.
	DPI int

	// PageTimeout bounds rasterization plus OCR for one page. Expiry is
	// fatal for the request; OCR is not retried since a second pass over
	// a structurally unreadable scan rarely changes the outcome.
	PageTimeout time.Duration

	// Concurrency caps the number of pages processed at once.
	Concurrency int

	// Contrast and Threshold are the image preprocessing constants.
	Contrast  float64
	Threshold uint8
}

// Acquire produces the document's linear text: every page's contribution
// in physical page order, each terminated by a line break. It returns an
// AcquisitionError when both the text-layer and OCR paths fail.
func (p *PDFAcquirer) Acquire(ctx context.Context, r io.Reader, _ string) (string, error) {
	// Both the text-layer reader and the rasterizer want a file path, so
	// spool the upload to a request-scoped temp file.
	tmp, err := os.CreateTemp("", "syllex-pdf-*.pdf")
	if err != nil {
		return "", &AcquisitionError{Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", &AcquisitionError{Err: fmt.Errorf("write temp file: %w", err)}
	}
	tmp.Close()

	text, layerErr := textLayer(tmpPath)
	if layerErr == nil && !needsOCR(text) {
		return text, nil
	}

	ocrText, ocrErr := p.ocrDocument(ctx, tmpPath)
	if ocrErr != nil {
		if layerErr != nil {
			return "", &AcquisitionError{Err: fmt.Errorf("text layer: %v; ocr: %w", layerErr, ocrErr)}
		}
		return "", &AcquisitionError{Err: ocrErr}
	}
	return ocrText, nil
}

// needsOCR reports whether direct extraction produced nothing usable:
// either no text at all, or text that starts with the raw PDF container
// marker, meaning the "text layer" is actually unparsed binary content.
func needsOCR(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed == "" || strings.HasPrefix(trimmed, "%PDF")
}

// textLayer is swapped out by tests that need to drive Acquire's
// fallback branch directly.
var textLayer = readTextLayer

// readTextLayer concatenates every page's embedded text. Pages without a
// text layer contribute nothing; that is not an error. A page whose text
// read fails is an error for the whole document: returning the readable
// pages alone would hand the caller silently truncated text, so the
// caller falls back to OCR instead.
func readTextLayer(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d text: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// ocrDocument rasterizes, preprocesses, and OCRs every page. Pages fan
// out across workers but fan in by page index, so the concatenation
// always matches physical page order. Any page failure aborts the whole
// document; a partially OCR'd text is never returned.
func (p *PDFAcquirer) ocrDocument(ctx context.Context, path string) (string, error) {
	pageCount, err := p.Raster.PageCount(path)
	if err != nil {
		return "", err
	}

	texts := make([]string, pageCount)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency())

	for i := 0; i < pageCount; i++ {
		i := i
		g.Go(func() error {
			text, err := p.ocrPage(gctx, path, i+1)
			if err != nil {
				return err
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var buf strings.Builder
	for _, t := range texts {
		buf.WriteString(t)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

func (p *PDFAcquirer) ocrPage(ctx context.Context, path string, page int) (string, error) {
	pctx := ctx
	if p.PageTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, p.PageTimeout)
		defer cancel()
	}

	img, err := p.Raster.RenderPage(pctx, path, page, p.dpi())
	if err != nil {
		return "", err
	}

	prepped := ocrprep.Binarize(img, p.contrast(), p.threshold())
	data, err := ocrprep.EncodeTIFF(prepped)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", page, err)
	}

	text, err := p.OCR.Recognize(pctx, data)
	if err != nil {
		return "", fmt.Errorf("ocr page %d: %w", page, err)
	}
	return text, nil
}

func (p *PDFAcquirer) dpi() int {
	if p.DPI > 0 {
		return p.DPI
	}
	return 400
}

func (p *PDFAcquirer) concurrency() int {
	if p.Concurrency > 0 {
		return p.Concurrency
	}
	return 1
}

func (p *PDFAcquirer) contrast() float64 {
	if p.Contrast > 0 {
		return p.Contrast
	}
	return ocrprep.DefaultContrast
}

func (p *PDFAcquirer) threshold() uint8 {
	if p.Threshold > 0 {
		return p.Threshold
	}
	return ocrprep.DefaultThreshold
}
