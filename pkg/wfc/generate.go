package wfc

import "tilewave/pkg/grid"

// Generate builds a w*h map with the default configuration.
func Generate[T comparable](space TileSpace[T], w, h int) (*grid.Grid[T], error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return GenerateWithConfig(space, cfg)
}

// GenerateWithConfig steps a new generator until it completes, capped at one
// step per cell, and returns the finished map.
func GenerateWithConfig[T comparable](space TileSpace[T], cfg Config) (*grid.Grid[T], error) {
	g, err := NewWithConfig(space, cfg)
	if err != nil {
		return nil, err
	}
	w, h := g.Size()
	for range w * h {
		if g.Step() {
			break
		}
	}
	return g.Finish(), nil
}
