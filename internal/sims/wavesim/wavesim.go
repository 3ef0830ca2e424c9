package wavesim

import (
	"errors"
	"image/color"
	"io"
	"log/slog"
	"math"

	"tilewave/internal/core"
	"tilewave/internal/render"
	"tilewave/pkg/grid"
	"tilewave/pkg/wfc"
)

var errNotFinished = errors.New("wavesim: map is not finished")

// Unresolved is the palette color of cells that still have several
// candidates.
var Unresolved = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// Tileset names a tile space together with how to draw its tiles. Color and
// Glyph are optional.
type Tileset[T comparable] struct {
	Name  string
	Space wfc.TileSpace[T]
	Color func(T) color.RGBA
	Glyph func(T) rune
}

// Sim adapts a generator to core.Sim. Cell value 0 means unresolved and
// value k means the tile with identity k-1; alphabets beyond 255 tiles share
// the last palette slot.
type Sim[T comparable] struct {
	set Tileset[T]
	cfg wfc.Config

	gen      *wfc.Generator[T]
	display  *core.ByteGrid
	palette  []color.RGBA
	result   *grid.Grid[T]
	stats    wfc.Stats
	finished bool
}

// New builds a sim and its first generator. Construction errors from the
// engine are returned unchanged.
func New[T comparable](set Tileset[T], cfg wfc.Config) (*Sim[T], error) {
	s := &Sim[T]{set: set, cfg: cfg}
	if err := s.rebuild(cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sim[T]) rebuild(seed int64) error {
	cfg := s.cfg
	cfg.Seed = seed
	gen, err := wfc.NewWithConfig(s.set.Space, cfg)
	if err != nil {
		return err
	}
	s.gen = gen
	s.cfg.Seed = seed
	s.display = core.NewByteGrid(cfg.Width, cfg.Height)
	s.result = nil
	s.stats = wfc.Stats{}
	s.finished = false
	if s.palette == nil {
		s.palette = buildPalette(gen.Variants(), s.set.Color)
	}
	s.refresh()
	return nil
}

func buildPalette[T comparable](tiles []T, colorOf func(T) color.RGBA) []color.RGBA {
	n := min(len(tiles), math.MaxUint8)
	palette := make([]color.RGBA, n+1)
	palette[0] = Unresolved
	for i := 0; i < n; i++ {
		if colorOf != nil {
			palette[i+1] = colorOf(tiles[i])
			continue
		}
		shade := uint8(40 + 200*i/max(n-1, 1))
		palette[i+1] = color.RGBA{R: shade, G: shade, B: shade, A: 255}
	}
	return palette
}

func cellValue(id int) uint8 {
	return uint8(min(id+1, math.MaxUint8))
}

func (s *Sim[T]) refresh() {
	cells := s.display.Cells()
	snap := s.gen.Current()
	for i, o := range snap.Cells() {
		if tile, ok := o.Get(); ok {
			cells[i] = cellValue(s.set.Space.Identity(tile))
			continue
		}
		cells[i] = 0
	}
}

// Name returns the tileset name.
func (s *Sim[T]) Name() string { return s.set.Name }

// Size returns the map dimensions.
func (s *Sim[T]) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Cells exposes the display buffer.
func (s *Sim[T]) Cells() []uint8 { return s.display.Cells() }

// Palette returns the display colors; index 0 is the unresolved color.
func (s *Sim[T]) Palette() []color.RGBA { return s.palette }

// Reset starts a fresh generator. A zero seed reuses the configured seed. If
// the generator cannot be rebuilt the current run is kept and the error is
// logged.
func (s *Sim[T]) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	if err := s.rebuild(seed); err != nil {
		slog.Error("Failed to reset map.", "tileset", s.set.Name, "seed", seed, "error", err)
	}
}

// Step advances the generator once and reports whether every cell is
// resolved.
func (s *Sim[T]) Step() bool {
	if s.finished {
		return true
	}
	done := s.gen.Step()
	s.refresh()
	return done
}

// Run steps to completion, at most once per cell, and finishes the map. The
// display is only refreshed at the end.
func (s *Sim[T]) Run() {
	if s.finished {
		return
	}
	for range s.cfg.Width * s.cfg.Height {
		if s.gen.Step() {
			break
		}
	}
	s.Finish()
}

// Finish force-resolves the remaining cells and freezes the map.
func (s *Sim[T]) Finish() {
	if s.finished {
		return
	}
	s.result = s.gen.Finish()
	s.stats = s.gen.Stats()
	cells := s.display.Cells()
	for i, tile := range s.result.Cells() {
		cells[i] = cellValue(s.set.Space.Identity(tile))
	}
	s.finished = true
}

// Finished reports whether Finish has run.
func (s *Sim[T]) Finished() bool { return s.finished }

// Result returns the finished map, or nil before Finish.
func (s *Sim[T]) Result() *grid.Grid[T] { return s.result }

// WriteText prints the finished map as one glyph per cell, or '?' per cell
// when the tileset has no glyphs. It fails before Finish.
func (s *Sim[T]) WriteText(w io.Writer) error {
	if s.result == nil {
		return errNotFinished
	}
	glyph := s.set.Glyph
	if glyph == nil {
		glyph = func(T) rune { return '?' }
	}
	return render.WriteText(w, s.result, glyph)
}

// Stats returns the generator counters.
func (s *Sim[T]) Stats() wfc.Stats {
	if s.finished {
		return s.stats
	}
	return s.gen.Stats()
}

// EntropyField returns the candidate count of every cell in row-major order
// together with the alphabet size.
func (s *Sim[T]) EntropyField() ([]int, int) {
	n := len(s.gen.Variants())
	counts := make([]int, s.cfg.Width*s.cfg.Height)
	for i := range counts {
		if s.finished {
			counts[i] = 1
			continue
		}
		counts[i] = s.gen.Entropy(i%s.cfg.Width, i/s.cfg.Width)
	}
	return counts, n
}

// Resolved returns how many cells are resolved.
func (s *Sim[T]) Resolved() int {
	if s.finished {
		return s.cfg.Width * s.cfg.Height
	}
	return s.gen.Resolved()
}

// Parameters exposes the run configuration and progress for display.
func (s *Sim[T]) Parameters() core.ParameterSnapshot {
	st := s.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Map",
			Params: []core.Parameter{
				core.StringParam("tileset", "Tileset", s.set.Name),
				core.IntParam("w", "Width", s.cfg.Width),
				core.IntParam("h", "Height", s.cfg.Height),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Engine",
			Params: []core.Parameter{
				core.StringParam("mode", "Mode", s.cfg.Mode.String()),
				core.IntParam("radius", "Radius", max(s.cfg.Radius, 1)),
				core.BoolParam("cube", "Cube affinity", s.cfg.CubeAffinity),
			},
		},
		{
			Name: "Progress",
			Params: []core.Parameter{
				core.IntParam("resolved", "Resolved", s.Resolved()),
				core.IntParam("steps", "Steps", st.Steps),
				core.IntParam("contradictions", "Contradictions", st.Contradictions),
				core.IntParam("empty_candidates", "Empty candidates", st.EmptyCandidates),
				core.IntParam("finish_picks", "Finish picks", st.FinishPicks),
			},
		},
	}}
}
