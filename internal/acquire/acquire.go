// Package acquire turns uploaded syllabus documents into a single linear
// text string, page order preserved. Born-digital formats always carry a
// text layer; PDFs fall back to OCR when their embedded text layer is
// empty or turns out to be raw container bytes.
package acquire

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Acquirer produces the linear text representation of one document.
type Acquirer interface {
	Acquire(ctx context.Context, r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Dispatcher selects the acquirer for a file. Only the PDF acquirer
// carries dependencies (rasterizer, OCR engine); the rest are stateless.
type Dispatcher struct {
	PDF *PDFAcquirer
}

// ForFile returns the acquirer for filename, or an InputError for
// unsupported extensions.
func (d *Dispatcher) ForFile(filename string) (Acquirer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextAcquirer{}, nil
	case ".md", ".markdown":
		return &MarkdownAcquirer{}, nil
	case ".html", ".htm":
		return &HTMLAcquirer{}, nil
	case ".docx":
		return &DOCXAcquirer{}, nil
	case ".pdf":
		return d.PDF, nil
	default:
		return nil, &InputError{Reason: fmt.Sprintf("unsupported file extension: %s", ext)}
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}
