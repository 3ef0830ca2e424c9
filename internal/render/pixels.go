package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Values past the end of the palette use its last entry. When the palette is
// empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillEntropyRGBA paints a translucent heat map of candidate counts. Resolved
// cells stay transparent, empty cells are flagged red, and open cells run
// from cool to warm as their count approaches maxCount.
func fillEntropyRGBA(buf []byte, counts []int, maxCount int) {
	span := float64(max(maxCount-2, 1))
	for i, n := range counts {
		base := i * 4
		var col color.RGBA
		switch {
		case n == 0:
			col = contradiction
		case n == 1:
		default:
			col = heat(float64(n-2) / span)
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

var contradiction = color.RGBA{R: 230, G: 40, B: 40, A: 220}

var heatStops = []struct {
	t   float64
	col color.RGBA
}{
	{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 110}},
	{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 140}},
	{1.0, color.RGBA{R: 240, G: 200, B: 90, A: 170}},
}

func heat(t float64) color.RGBA {
	t = clamp01(t)
	for i := 1; i < len(heatStops); i++ {
		curr := heatStops[i]
		if t <= curr.t {
			prev := heatStops[i-1]
			return lerpRGBA(prev.col, curr.col, (t-prev.t)/(curr.t-prev.t))
		}
	}
	return heatStops[len(heatStops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
