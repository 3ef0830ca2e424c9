package render

import (
	"bufio"
	"image"
	"image/color"
	"io"

	"golang.org/x/image/draw"

	"tilewave/pkg/grid"
)

// Image renders palette-indexed cells into an RGBA image, blowing each cell
// up to a scale x scale block.
func Image(cells []uint8, w, h int, palette []color.RGBA, scale int) *image.RGBA {
	scale = max(scale, 1)
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(src.Pix, cells[:w*h], palette)
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// EntropyImage renders a heat map of candidate counts at the given scale.
func EntropyImage(counts []int, w, h, maxCount, scale int) *image.RGBA {
	scale = max(scale, 1)
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	fillEntropyRGBA(src.Pix, counts[:w*h], maxCount)
	if scale == 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteText prints a map as one line of glyphs per row.
func WriteText[T any](w io.Writer, g *grid.Grid[T], glyph func(T) rune) error {
	bw := bufio.NewWriter(w)
	width := g.Width()
	for i, v := range g.All() {
		bw.WriteRune(glyph(v))
		if (i+1)%width == 0 {
			bw.WriteByte('\n')
		}
	}
	if g.Len()%width != 0 {
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
