package acquire

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// DOCXAcquirer handles .docx files. Each paragraph becomes one line, so
// heading paragraphs are naturally matchable at line start.
type DOCXAcquirer struct{}

func (a *DOCXAcquirer) Acquire(_ context.Context, r io.Reader, _ string) (string, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "syllex-docx-*.docx")
	if err != nil {
		return "", &AcquisitionError{Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return "", &AcquisitionError{Err: fmt.Errorf("write temp file: %w", err)}
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return "", &AcquisitionError{Err: fmt.Errorf("seek temp file: %w", err)}
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return "", &AcquisitionError{Err: fmt.Errorf("parse docx: %w", err)}
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if t := paragraphText(para); t != "" {
			b.WriteString(t)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
