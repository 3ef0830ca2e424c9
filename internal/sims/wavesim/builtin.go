package wavesim

import (
	"fmt"

	"tilewave/internal/config"
	"tilewave/internal/core"
	"tilewave/pkg/tilesets/checker"
	"tilewave/pkg/tilesets/terrain"
)

// Terrain is the pairwise-weighted landscape tileset.
func Terrain() Tileset[terrain.Tile] {
	return Tileset[terrain.Tile]{Name: "terrain", Space: terrain.Space{}, Color: terrain.Tile.Color, Glyph: terrain.Tile.Rune}
}

// TerrainClassic is the context-free landscape tileset.
func TerrainClassic() Tileset[terrain.Tile] {
	return Tileset[terrain.Tile]{Name: "terrain-classic", Space: terrain.Classic(), Color: terrain.Tile.Color, Glyph: terrain.Tile.Rune}
}

// Checker is the two-tone weave tileset.
func Checker() Tileset[checker.Tile] {
	return Tileset[checker.Tile]{Name: "checker", Space: checker.Space(3), Color: checker.Tile.Color, Glyph: checker.Tile.Rune}
}

func register[T comparable](set func() Tileset[T]) {
	name := set().Name
	core.Register(name, func(cfg map[string]string) (core.Sim, error) {
		s, err := New(set(), FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}

// FileTileset wraps a tileset decoded from an HCL file.
func FileTileset(ts *config.Tileset) Tileset[string] {
	return Tileset[string]{Name: ts.Name, Space: ts.Alphabet, Color: ts.Color, Glyph: ts.Glyph}
}

// Open returns a sim for the HCL tileset at file or, when file is empty, for
// the registered tileset name. params are FromMap keys.
func Open(name, file string, params map[string]string) (core.Sim, error) {
	if file != "" {
		ts, err := config.LoadTileset(file)
		if err != nil {
			return nil, err
		}
		s, err := New(FileTileset(ts), FromMap(params))
		if err != nil {
			return nil, fmt.Errorf("tileset %s: %w", file, err)
		}
		return s, nil
	}
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown tileset %q (available: %v)", name, core.Names())
	}
	s, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("tileset %s: %w", name, err)
	}
	return s, nil
}

func init() {
	register(Terrain)
	register(TerrainClassic)
	register(Checker)
}
