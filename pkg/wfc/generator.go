package wfc

import (
	"log/slog"
	"slices"

	"tilewave/pkg/core"
	"tilewave/pkg/grid"
)

// Stats counts what a generator did, including every recovery path that can
// leave an adjacency the tile space does not allow.
type Stats struct {
	Steps     int
	Collapses int
	Passes    int

	// EmptyCandidates counts collapses whose weighted list was empty and
	// fell back to a uniform draw over the whole alphabet.
	EmptyCandidates int
	// Contradictions counts cells whose domain would have been emptied and
	// were resolved to the fallback tile instead.
	Contradictions int
	// FinishPicks counts cells Finish resolved by a uniform pick.
	FinishPicks int
	// FinishFallbacks counts empty cells Finish replaced with the fallback.
	FinishFallbacks int
}

// Exact reports whether no recovery path ran, in which case every adjacent
// pair in the output is allowed by the tile space.
func (s Stats) Exact() bool {
	return s.EmptyCandidates == 0 && s.Contradictions == 0 && s.FinishPicks == 0 && s.FinishFallbacks == 0
}

// Generator holds the in-progress map for one run. It is not safe for
// concurrent use.
type Generator[T comparable] struct {
	cfg   Config
	w, h  int
	alpha *alphabet[T]
	cells *grid.Grid[Domain]
	rng   *core.RNG
	log   *slog.Logger

	// anyAllowed is the union of every compatibility entry, the allowance of
	// a neighbor that is still fully open.
	anyAllowed Domain
	union      Domain
	hoods      map[int][][2]int
	weightBuf  []int
	idBuf      []int
	cellBuf    []int

	// settled is the largest radius the current domains are known to be
	// consistent at; zero after any change.
	settled  int
	cursor   int
	done     bool
	finished bool
	stats    Stats
}

// New returns a generator for a w*h map using the default configuration.
func New[T comparable](space TileSpace[T], w, h int) (*Generator[T], error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(space, cfg)
}

// NewWithConfig returns a generator with every cell open to every tile.
func NewWithConfig[T comparable](space TileSpace[T], cfg Config) (*Generator[T], error) {
	cfg, err := cfg.validate()
	if err != nil {
		return nil, err
	}
	alpha, err := compile(space)
	if err != nil {
		return nil, err
	}
	n := alpha.size()
	g := &Generator[T]{
		cfg:        cfg,
		w:          cfg.Width,
		h:          cfg.Height,
		alpha:      alpha,
		cells:      grid.FilledFunc(cfg.Width, cfg.Height, func() Domain { return FullDomain(n) }),
		rng:        core.NewRNG(cfg.Seed),
		log:        cfg.Logger,
		anyAllowed: NewDomain(n),
		union:      NewDomain(n),
		hoods:      map[int][][2]int{},
	}
	for _, mask := range alpha.allowed {
		g.anyAllowed.Union(mask)
	}
	g.done = !g.hasUnresolved()
	return g, nil
}

// Step runs one propagate, select and collapse cycle at the configured radius
// and reports whether every cell is resolved.
func (g *Generator[T]) Step() bool { return g.step(g.cfg.Radius) }

// StepExtended is Step with the 5x5 neighborhood, trading speed for output
// quality.
func (g *Generator[T]) StepExtended() bool {
	return g.step(max(g.cfg.Radius, 2))
}

func (g *Generator[T]) step(radius int) bool {
	g.mustBeLive()
	if g.done {
		return true
	}
	g.stats.Steps++
	if g.cfg.Mode == ModeScanOrder {
		g.done = g.stepScan(radius)
	} else {
		g.done = g.stepEntropy(radius)
	}
	return g.done
}

func (g *Generator[T]) stepEntropy(radius int) bool {
	g.propagate(radius)
	i, ok := g.selectCell()
	if !ok {
		return true
	}
	g.collapse(i, radius)
	g.propagate(radius)
	return !g.hasUnresolved()
}

func (g *Generator[T]) stepScan(radius int) bool {
	cells := g.cells.Cells()
	g.skipResolved()
	if g.cursor >= len(cells) {
		return true
	}
	i := g.cursor
	g.narrowFromResolved(i, radius)
	if cells[i].Count() > 1 {
		g.collapse(i, radius)
	}
	g.cursor++
	g.skipResolved()
	return g.cursor >= len(cells)
}

func (g *Generator[T]) skipResolved() {
	cells := g.cells.Cells()
	for g.cursor < len(cells) && cells[g.cursor].Count() <= 1 {
		g.cursor++
	}
}

// Current returns a snapshot holding the tile of every resolved cell. It does
// not change generator state.
func (g *Generator[T]) Current() *grid.Grid[Option[T]] {
	g.mustBeLive()
	out := grid.New[Option[T]](g.w)
	for _, d := range g.cells.All() {
		if id, ok := d.Single(); ok {
			out.Append(Some(g.alpha.tiles[id]))
			continue
		}
		out.Append(None[T]())
	}
	return out
}

// Finish resolves every remaining cell and hands over the finished map.
// Cells with several candidates get a uniform pick among them and empty cells
// get the fallback tile. The generator cannot be used afterwards.
func (g *Generator[T]) Finish() *grid.Grid[T] {
	g.mustBeLive()
	out := grid.New[T](g.w)
	i := 0
	for d := range g.cells.Drain() {
		var id int
		switch d.State() {
		case Resolved:
			id, _ = d.Single()
		case Unresolved:
			g.idBuf = append(g.idBuf[:0], d.IDs()...)
			id = core.Pick(g.rng, g.idBuf)
			g.stats.FinishPicks++
		default:
			id = g.alpha.fallback
			g.stats.FinishFallbacks++
			x, y := g.cells.Coords(i)
			g.log.Debug("Empty domain at finish, substituting fallback tile.", "x", x, "y", y)
		}
		out.Append(g.alpha.tiles[id])
		i++
	}
	g.finished = true
	g.done = true
	g.log.Debug("Generation finished.",
		"steps", g.stats.Steps,
		"collapses", g.stats.Collapses,
		"finish_picks", g.stats.FinishPicks,
		"contradictions", g.stats.Contradictions,
		"empty_candidates", g.stats.EmptyCandidates)
	return out
}

// Done reports whether every cell is resolved.
func (g *Generator[T]) Done() bool { return g.done }

// Size returns the map dimensions.
func (g *Generator[T]) Size() (int, int) { return g.w, g.h }

// Stats returns the counters accumulated so far.
func (g *Generator[T]) Stats() Stats { return g.stats }

// Variants returns a copy of the alphabet in identity order.
func (g *Generator[T]) Variants() []T { return slices.Clone(g.alpha.tiles) }

// Resolved returns how many cells have at most one candidate left.
func (g *Generator[T]) Resolved() int {
	g.mustBeLive()
	n := 0
	for _, d := range g.cells.All() {
		if d.Count() <= 1 {
			n++
		}
	}
	return n
}

// CellState classifies the cell at (x, y).
func (g *Generator[T]) CellState(x, y int) CellState {
	g.mustBeLive()
	return g.cells.Get(x, y).State()
}

// Entropy returns the number of candidates left for the cell at (x, y).
func (g *Generator[T]) Entropy(x, y int) int {
	g.mustBeLive()
	return g.cells.Get(x, y).Count()
}

func (g *Generator[T]) hasUnresolved() bool {
	return g.cells.Contains(func(d Domain) bool { return d.Count() > 1 })
}

func (g *Generator[T]) mustBeLive() {
	if g.finished {
		panic("wfc: generator used after Finish")
	}
}
