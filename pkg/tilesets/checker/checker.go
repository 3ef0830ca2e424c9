// Package checker provides a two-tone tileset that always solves: both tiles
// may touch anything, and unlike pairs outweigh like pairs, so maps come out
// as a fine, irregular checker weave.
package checker

import (
	"image/color"

	"tilewave/pkg/wfc"
)

// Tile is a checker square.
type Tile uint8

const (
	Light Tile = iota
	Dark
)

func (t Tile) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// Color returns the display color of the tile.
func (t Tile) Color() color.RGBA {
	if t == Dark {
		return color.RGBA{R: 46, G: 52, B: 64, A: 255}
	}
	return color.RGBA{R: 229, G: 233, B: 240, A: 255}
}

// Rune returns a glyph for text output.
func (t Tile) Rune() rune {
	if t == Dark {
		return '#'
	}
	return '.'
}

// Space returns the checker alphabet. contrast is the weight of an unlike
// pair; like pairs weigh 1. Values below 1 are raised to 1.
func Space(contrast int) *wfc.Alphabet[Tile] {
	contrast = max(contrast, 1)
	return wfc.NewAlphabet(Light, Dark).
		Allow(Light, Light, 1).
		Allow(Dark, Dark, 1).
		AllowSymmetric(Light, Dark, contrast)
}
