//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell data into an offscreen image and draws it scaled
// onto the screen.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a w x h map.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{w: w, h: h, img: ebiten.NewImage(w, h), buf: make([]byte, 4*w*h)}
}

// Blit draws palette-indexed cells. Cell slices of the wrong length are
// ignored.
func (p *GridPainter) Blit(screen *ebiten.Image, cells []uint8, palette []color.RGBA, scale int) {
	if len(cells) != p.w*p.h {
		return
	}
	fillPaletteRGBA(p.buf, cells, palette)
	p.draw(screen, scale)
}

// BlitEntropy draws a translucent heat map of candidate counts.
func (p *GridPainter) BlitEntropy(screen *ebiten.Image, counts []int, maxCount, scale int) {
	if len(counts) != p.w*p.h {
		return
	}
	fillEntropyRGBA(p.buf, counts, maxCount)
	p.draw(screen, scale)
}

func (p *GridPainter) draw(screen *ebiten.Image, scale int) {
	p.img.WritePixels(p.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(max(scale, 1)), float64(max(scale, 1)))
	screen.DrawImage(p.img, op)
}
