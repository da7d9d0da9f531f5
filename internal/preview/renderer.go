package preview

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

const naturalDPI = 72

// FitzRenderer rasterizes PDF pages with MuPDF.
type FitzRenderer struct{}

// NewFitzRenderer creates the production renderer.
func NewFitzRenderer() FitzRenderer {
	return FitzRenderer{}
}

// RenderPage rasterizes the given zero-based page at scale times natural
// size.
func (FitzRenderer) RenderPage(ctx context.Context, pdf []byte, page int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("gagal membuka dokumen PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()

	if page < 0 || page >= doc.NumPage() {
		return nil, fmt.Errorf("halaman %d tidak ada dalam dokumen", page+1)
	}

	if scale <= 0 {
		scale = 1
	}
	img, err := doc.ImageDPI(page, naturalDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("gagal merender halaman PDF: %w", err)
	}
	return img, nil
}

// PageWidth returns the natural (72 DPI) pixel width of the given page,
// the reference for FitScale.
func (FitzRenderer) PageWidth(pdf []byte, page int) (float64, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return 0, fmt.Errorf("gagal membuka dokumen PDF: %w", err)
	}
	defer func() { _ = doc.Close() }()

	bound, err := doc.Bound(page)
	if err != nil {
		return 0, fmt.Errorf("gagal membaca ukuran halaman: %w", err)
	}
	return float64(bound.Dx()), nil
}
