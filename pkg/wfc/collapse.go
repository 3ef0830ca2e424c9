package wfc

// collapse reduces the cell at i to one tile. Each candidate is weighted by
// twice its self-compatibility plus its compatibility with every resolved
// neighbor within radius, optionally cubed. An all-zero weighting falls back
// to a uniform draw over the whole alphabet.
func (g *Generator[T]) collapse(i, radius int) {
	cells := g.cells.Cells()
	d := cells[i]
	x, y := g.cells.Coords(i)

	g.idBuf = g.idBuf[:0]
	for _, off := range g.neighborhood(radius) {
		nx, ny := x+off[0], y+off[1]
		if nx < 0 || ny < 0 || nx >= g.w || ny >= g.h {
			continue
		}
		if id, ok := cells[ny*g.w+nx].Single(); ok {
			g.idBuf = append(g.idBuf, id)
		}
	}

	g.weightBuf = g.weightBuf[:0]
	total := 0
	candidates := d.IDs()
	for _, c := range candidates {
		w := 2 * g.alpha.self[c]
		for _, nb := range g.idBuf {
			a := g.alpha.weight(nb, c)
			if g.cfg.CubeAffinity {
				a = a * a * a
			}
			w += a
		}
		g.weightBuf = append(g.weightBuf, w)
		total += w
	}

	var pick int
	if total == 0 {
		pick = g.rng.IntN(g.alpha.size())
		g.stats.EmptyCandidates++
		g.log.Debug("Empty candidate list, drawing from the full alphabet.", "x", x, "y", y, "candidates", len(candidates))
	} else {
		r := g.rng.IntN(total)
		for k, w := range g.weightBuf {
			if r < w {
				pick = candidates[k]
				break
			}
			r -= w
		}
	}

	d.Collapse(pick)
	g.stats.Collapses++
	g.settled = 0
}
