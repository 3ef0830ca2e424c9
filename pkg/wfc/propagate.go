package wfc

// neighborhood returns the offsets within Chebyshev distance radius, excluding
// the origin, in row-major order.
func (g *Generator[T]) neighborhood(radius int) [][2]int {
	if hood, ok := g.hoods[radius]; ok {
		return hood
	}
	hood := make([][2]int, 0, (2*radius+1)*(2*radius+1)-1)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			hood = append(hood, [2]int{dx, dy})
		}
	}
	g.hoods[radius] = hood
	return hood
}

// allowance returns the tiles permitted next to a cell whose domain is d: the
// union of the compatibility entries of everything d still allows.
func (g *Generator[T]) allowance(d Domain) Domain {
	if id, ok := d.Single(); ok {
		return g.alpha.allowed[id]
	}
	if d.Count() == g.alpha.size() {
		return g.anyAllowed
	}
	g.union.Clear()
	for id := range d.Each() {
		g.union.Union(g.alpha.allowed[id])
	}
	return g.union
}

// propagate narrows every unresolved cell by its neighbors' allowances,
// visiting cells row-major and repeating passes until nothing changes.
// Resolved cells are never narrowed.
func (g *Generator[T]) propagate(radius int) {
	if g.settled >= radius {
		return
	}
	hood := g.neighborhood(radius)
	cells := g.cells.Cells()
	for {
		g.stats.Passes++
		changed := false
		for i, d := range cells {
			if d.Count() <= 1 {
				continue
			}
			x, y := g.cells.Coords(i)
			before := d.Count()
			for _, off := range hood {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || ny < 0 || nx >= g.w || ny >= g.h {
					continue
				}
				nd := cells[ny*g.w+nx]
				if nd.Count() == 0 {
					continue
				}
				allow := g.allowance(nd)
				if !d.Overlaps(allow) {
					g.heal(i)
					break
				}
				d.Intersect(allow)
			}
			if d.Count() != before {
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	g.settled = radius
}

// narrowFromResolved intersects the cell at i with the compatibility entry of
// each resolved neighbor. Scan-order mode uses it in place of a full pass.
func (g *Generator[T]) narrowFromResolved(i, radius int) {
	cells := g.cells.Cells()
	d := cells[i]
	x, y := g.cells.Coords(i)
	for _, off := range g.neighborhood(radius) {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || ny < 0 || nx >= g.w || ny >= g.h {
			continue
		}
		id, ok := cells[ny*g.w+nx].Single()
		if !ok {
			continue
		}
		allow := g.alpha.allowed[id]
		if !d.Overlaps(allow) {
			g.heal(i)
			return
		}
		d.Intersect(allow)
	}
}

// heal resolves a cell that would otherwise be left without candidates to the
// fallback tile.
func (g *Generator[T]) heal(i int) {
	g.cells.Cells()[i].Collapse(g.alpha.fallback)
	g.stats.Contradictions++
	g.settled = 0
	x, y := g.cells.Coords(i)
	g.log.Debug("Contradiction, resolving cell to fallback tile.", "x", x, "y", y)
}

// selectCell returns the unresolved cell with the fewest candidates, breaking
// ties uniformly at random.
func (g *Generator[T]) selectCell() (int, bool) {
	best := 0
	g.cellBuf = g.cellBuf[:0]
	for i, d := range g.cells.Cells() {
		c := d.Count()
		if c <= 1 {
			continue
		}
		if best == 0 || c < best {
			best = c
			g.cellBuf = g.cellBuf[:0]
		}
		if c == best {
			g.cellBuf = append(g.cellBuf, i)
		}
	}
	if len(g.cellBuf) == 0 {
		return 0, false
	}
	return g.cellBuf[g.rng.IntN(len(g.cellBuf))], true
}
