// Package terrain provides an eight-tile landscape alphabet in two flavors:
// a pairwise-weighted, symmetric rule set tuned for coherent coastlines and
// forests, and the classic context-free rule set kept for benchmarking.
package terrain

import (
	"image/color"
	"slices"

	"tilewave/pkg/wfc"
)

// Tile is one terrain type.
type Tile uint8

const (
	Sand Tile = iota
	DarkSand
	Water
	DeepWater
	Rocks
	Grass
	Forest
	DeepForest
)

var all = []Tile{Sand, DarkSand, Water, DeepWater, Rocks, Grass, Forest, DeepForest}

var names = [...]string{
	Sand:       "sand",
	DarkSand:   "dark_sand",
	Water:      "water",
	DeepWater:  "deep_water",
	Rocks:      "rocks",
	Grass:      "grass",
	Forest:     "forest",
	DeepForest: "deep_forest",
}

var colors = [...]color.RGBA{
	Sand:       {R: 222, G: 252, B: 70, A: 255},
	DarkSand:   {R: 125, G: 135, B: 74, A: 255},
	Water:      {R: 37, G: 158, B: 146, A: 255},
	DeepWater:  {R: 5, G: 43, B: 114, A: 255},
	Rocks:      {R: 39, G: 44, B: 53, A: 255},
	Grass:      {R: 65, G: 186, B: 52, A: 255},
	Forest:     {R: 31, G: 102, B: 23, A: 255},
	DeepForest: {R: 47, G: 68, B: 35, A: 255},
}

// Tiles returns every terrain tile in identity order.
func Tiles() []Tile { return slices.Clone(all) }

func (t Tile) String() string {
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// Color returns the display color of the tile.
func (t Tile) Color() color.RGBA {
	if int(t) < len(colors) {
		return colors[t]
	}
	return color.RGBA{A: 255}
}

// Rune returns a single-character glyph for text output.
func (t Tile) Rune() rune {
	switch t {
	case Sand:
		return '.'
	case DarkSand:
		return ':'
	case Water:
		return '~'
	case DeepWater:
		return '='
	case Rocks:
		return '^'
	case Grass:
		return ','
	case Forest:
		return 't'
	case DeepForest:
		return 'T'
	}
	return '?'
}

// bands lists the symmetric adjacency relation; each tile also borders
// itself.
var bands = map[Tile][]Tile{
	DeepWater:  {Water},
	Water:      {DeepWater, Sand},
	Sand:       {Water, DarkSand, Grass},
	DarkSand:   {Sand, Rocks},
	Rocks:      {DarkSand, DeepForest},
	Grass:      {Sand, Forest},
	Forest:     {Grass, DeepForest},
	DeepForest: {Forest, Rocks},
}

// clump is the weight of a tile next to itself; neighbors across a band
// boundary weigh 1.
var clump = [...]int{
	Sand:       3,
	DarkSand:   2,
	Water:      4,
	DeepWater:  5,
	Rocks:      2,
	Grass:      4,
	Forest:     4,
	DeepForest: 3,
}

// Space is the pairwise terrain tile space. The zero value is ready to use.
type Space struct{}

var _ wfc.TileSpace[Tile] = Space{}

func (Space) Variants() []Tile { return slices.Clone(all) }
func (Space) Identity(t Tile) int { return int(t) }
func (Space) Fallback() Tile { return Sand }

func (Space) AllowedNeighbors(t Tile) []Tile {
	return append([]Tile{t}, bands[t]...)
}

func (Space) Compatibility(t, other Tile) int {
	if t == other {
		return clump[t]
	}
	for _, b := range bands[t] {
		if b == other {
			return 1
		}
	}
	return 0
}

// Classic returns the context-free rule set: a single bias per tile and a
// directed, non-reflexive neighbor table. It contradicts itself often and
// exercises the engine's recovery paths.
func Classic() *wfc.Alphabet[Tile] {
	return wfc.ContextFree(all,
		map[Tile]int{
			Sand:       2,
			DarkSand:   1,
			Water:      2,
			DeepWater:  3,
			Rocks:      1,
			Grass:      2,
			Forest:     3,
			DeepForest: 1,
		},
		map[Tile][]Tile{
			Sand:       {Water, Grass},
			DarkSand:   {Sand, Water},
			Water:      {DeepWater, Forest},
			DeepWater:  {Water, Rocks},
			Rocks:      {DeepWater, DeepForest},
			Grass:      {Sand, Forest},
			Forest:     {Grass, DeepForest, Water},
			DeepForest: {Rocks, Forest},
		},
		Sand,
	)
}
