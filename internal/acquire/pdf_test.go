package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/tiff"
)

// fakeRaster renders a 1-pixel-tall image whose width encodes the page
// number, so the fake recognizer can tell pages apart after
// preprocessing.
type fakeRaster struct {
	pages   int
	pageErr error
}

func (f *fakeRaster) PageCount(string) (int, error) {
	return f.pages, nil
}

func (f *fakeRaster) RenderPage(_ context.Context, _ string, page, _ int) (image.Image, error) {
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return image.NewGray(image.Rect(0, 0, page, 1)), nil
}

// widthRecognizer "recognizes" the page number baked into the image
// width by fakeRaster.
type widthRecognizer struct{}

func (widthRecognizer) Recognize(_ context.Context, imageData []byte) (string, error) {
	img, err := tiff.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("page-%d", img.Bounds().Dx()), nil
}

// blockingRecognizer waits for the context to expire.
type blockingRecognizer struct{}

func (blockingRecognizer) Recognize(ctx context.Context, _ []byte) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type errRecognizer struct{ err error }

func (e errRecognizer) Recognize(context.Context, []byte) (string, error) { return "", e.err }

// trippedRaster and trippedRecognizer record any use, for tests that
// assert the OCR path is never entered.
type trippedRaster struct{ called bool }

func (f *trippedRaster) PageCount(string) (int, error) {
	f.called = true
	return 0, errors.New("rasterizer invoked")
}

func (f *trippedRaster) RenderPage(context.Context, string, int, int) (image.Image, error) {
	f.called = true
	return nil, errors.New("rasterizer invoked")
}

type trippedRecognizer struct{ called bool }

func (f *trippedRecognizer) Recognize(context.Context, []byte) (string, error) {
	f.called = true
	return "", errors.New("recognizer invoked")
}

// stubTextLayer replaces the embedded-text reader for one test.
func stubTextLayer(t *testing.T, text string, err error) {
	t.Helper()
	orig := textLayer
	textLayer = func(string) (string, error) { return text, err }
	t.Cleanup(func() { textLayer = orig })
}

func TestNeedsOCR(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", true},
		{"whitespace only", "  \n\t \n", true},
		{"raw container marker", "%PDF-1.7 binary garbage", true},
		{"marker after leading whitespace", "\n  %PDF-1.4", true},
		{"real text", "Course Syllabus\nGrading Scale:\n", false},
		{"marker mid-text is fine", "see %PDF spec for details", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := needsOCR(tt.text); got != tt.want {
				t.Errorf("needsOCR(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestPDFAcquirer_TextLayerNeverInvokesOCR(t *testing.T) {
	stubTextLayer(t, "Grading Scale:\nA 90-100\n", nil)
	raster := &trippedRaster{}
	rec := &trippedRecognizer{}
	p := &PDFAcquirer{Raster: raster, OCR: rec}

	text, err := p.Acquire(context.Background(), strings.NewReader("%PDF-1.7 stub"), "syllabus.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Grading Scale:\nA 90-100\n" {
		t.Errorf("expected the embedded text verbatim, got %q", text)
	}
	if raster.called {
		t.Error("rasterizer must not run when the text layer is usable")
	}
	if rec.called {
		t.Error("recognizer must not run when the text layer is usable")
	}
}

func TestPDFAcquirer_PageTextErrorFallsBackToOCR(t *testing.T) {
	// A document whose text layer fails partway must not surface the
	// readable pages as a complete result; the whole document goes
	// through OCR instead.
	stubTextLayer(t, "", errors.New("page 5 text: corrupt content stream"))
	p := &PDFAcquirer{
		Raster: &fakeRaster{pages: 2},
		OCR:    widthRecognizer{},
	}

	text, err := p.Acquire(context.Background(), strings.NewReader("%PDF-1.7 stub"), "scan.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "page-1\npage-2\n" {
		t.Errorf("expected OCR output for all pages, got %q", text)
	}
}

func TestPDFAcquirer_OCRPreservesPageOrder(t *testing.T) {
	p := &PDFAcquirer{
		Raster:      &fakeRaster{pages: 5},
		OCR:         widthRecognizer{},
		Concurrency: 4,
	}

	// Garbage bytes: the text-layer path fails, forcing OCR, which is
	// driven entirely by the fakes.
	text, err := p.Acquire(context.Background(), strings.NewReader("not a pdf"), "scan.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "page-1\npage-2\npage-3\npage-4\npage-5\n"
	if text != want {
		t.Errorf("expected page-ordered concatenation %q, got %q", want, text)
	}
}

func TestPDFAcquirer_OCRFailureIsAcquisitionError(t *testing.T) {
	p := &PDFAcquirer{
		Raster: &fakeRaster{pages: 2},
		OCR:    errRecognizer{err: errors.New("unreadable scan")},
	}

	_, err := p.Acquire(context.Background(), strings.NewReader("not a pdf"), "scan.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Errorf("expected AcquisitionError, got %T: %v", err, err)
	}
}

func TestPDFAcquirer_RasterFailureIsAcquisitionError(t *testing.T) {
	p := &PDFAcquirer{
		Raster: &fakeRaster{pages: 3, pageErr: errors.New("render failed")},
		OCR:    widthRecognizer{},
	}

	_, err := p.Acquire(context.Background(), strings.NewReader("not a pdf"), "scan.pdf")
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Errorf("expected AcquisitionError, got %T: %v", err, err)
	}
}

func TestPDFAcquirer_PageTimeoutIsFatal(t *testing.T) {
	p := &PDFAcquirer{
		Raster:      &fakeRaster{pages: 1},
		OCR:         blockingRecognizer{},
		PageTimeout: 5 * time.Millisecond,
	}

	_, err := p.Acquire(context.Background(), strings.NewReader("not a pdf"), "scan.pdf")
	if err == nil {
		t.Fatal("expected timeout to surface as an error")
	}
	var acqErr *AcquisitionError
	if !errors.As(err, &acqErr) {
		t.Errorf("expected AcquisitionError, got %T: %v", err, err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded in chain, got %v", err)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"syllabus.txt", true},
		{"syllabus.md", true},
		{"syllabus.markdown", true},
		{"syllabus.HTML", true},
		{"syllabus.htm", true},
		{"syllabus.docx", true},
		{"syllabus.pdf", true},
		{"syllabus.csv", false},
		{"syllabus", false},
	}
	for _, tt := range tests {
		if got := IsSupportedExtension(tt.filename); got != tt.want {
			t.Errorf("IsSupportedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDispatcher_ForFile(t *testing.T) {
	d := &Dispatcher{PDF: &PDFAcquirer{}}

	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"syllabus.pdf", false},
		{"syllabus.PDF", false},
		{"syllabus.docx", false},
		{"syllabus.md", false},
		{"syllabus.markdown", false},
		{"syllabus.html", false},
		{"syllabus.txt", false},
		{"syllabus.csv", true},
		{"syllabus", true},
	}
	for _, tt := range tests {
		_, err := d.ForFile(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForFile(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
		}
		if err != nil {
			var inputErr *InputError
			if !errors.As(err, &inputErr) {
				t.Errorf("ForFile(%q): expected InputError, got %T", tt.filename, err)
			}
		}
	}
}
