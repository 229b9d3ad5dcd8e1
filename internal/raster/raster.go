// Package raster turns PDF pages into images for the OCR path. The actual
// rasterization is delegated to poppler's pdftoppm binary, which must be
// on PATH; pdfcpu supplies validation and the page count up front so a
// corrupt document fails before any page work starts.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Rasterizer renders single PDF pages to images at a given resolution.
// Page numbers are 1-based.
type Rasterizer interface {
	PageCount(path string) (int, error)
	RenderPage(ctx context.Context, path string, page, dpi int) (image.Image, error)
}

// Pdftoppm rasterizes via the pdftoppm command.
type Pdftoppm struct {
	// Binary overrides the command name, mainly for tests.
	Binary string
}

func (p *Pdftoppm) binary() string {
	if p.Binary != "" {
		return p.Binary
	}
	return "pdftoppm"
}

// PageCount validates the PDF and returns its page count.
func (p *Pdftoppm) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// RenderPage renders one page to a PNG via pdftoppm and decodes it. The
// command is killed when ctx expires.
func (p *Pdftoppm) RenderPage(ctx context.Context, path string, page, dpi int) (image.Image, error) {
	dir, err := os.MkdirTemp("", "syllex-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := dir + "/page"
	cmd := exec.CommandContext(ctx, p.binary(),
		"-r", fmt.Sprint(dpi),
		"-f", fmt.Sprint(page),
		"-l", fmt.Sprint(page),
		"-png", "-singlefile",
		path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("pdftoppm page %d: %w", page, ctx.Err())
		}
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, out)
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("open rendered page %d: %w", page, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode rendered page %d: %w", page, err)
	}
	return img, nil
}
