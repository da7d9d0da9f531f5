package preview

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grayImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{200, 200, 200, 255})
		}
	}
	return img
}

func TestRasterCells_TwoPixelRowsPerLine(t *testing.T) {
	out := RasterCells(grayImage(4, 8), 80)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4, "two pixel rows collapse into one half-block line")
	assert.Contains(t, out, "▀")
}

func TestRasterCells_DownsamplesToFit(t *testing.T) {
	out := RasterCells(grayImage(200, 4), 50)

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, strings.Count(line, "▀"), 50)
	}
}

func TestRasterCells_NilImage(t *testing.T) {
	assert.Empty(t, RasterCells(nil, 80))
	assert.Empty(t, RasterCells(grayImage(4, 4), 0))
}
