package preview

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RasterCells converts a page image into terminal cells, one column per
// pixel column and one "▀" half-block per two pixel rows, downsampled to fit
// maxCols. This is the modal's raster surface.
func RasterCells(img image.Image, maxCols int) string {
	if img == nil || maxCols <= 0 {
		return ""
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return ""
	}

	step := 1
	if width > maxCols {
		step = (width + maxCols - 1) / maxCols
	}

	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 * step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			top := sampleBlock(img, x, y, step)
			bottom := color.RGBA{255, 255, 255, 255}
			if y+step < bounds.Max.Y {
				bottom = sampleBlock(img, x, y+step, step)
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// sampleBlock averages a step x step block so thin ruling lines survive
// downsampling instead of aliasing away.
func sampleBlock(img image.Image, x0, y0, step int) color.RGBA {
	bounds := img.Bounds()
	var r, g, b, n uint32
	for y := y0; y < y0+step && y < bounds.Max.Y; y++ {
		for x := x0; x < x0+step && x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			r += pr >> 8
			g += pg >> 8
			b += pb >> 8
			n++
		}
	}
	if n == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

const hexDigits = "0123456789abcdef"

func hexColor(c color.RGBA) string {
	out := make([]byte, 7)
	out[0] = '#'
	for i, v := range []uint8{c.R, c.G, c.B} {
		out[1+2*i] = hexDigits[v>>4]
		out[2+2*i] = hexDigits[v&0xf]
	}
	return string(out)
}
