package grid

import (
	"fmt"
	"iter"
)

// Grid stores a 2D grid of values in row-major order. The height is derived
// from the number of stored cells, so a grid can be built up one cell at a
// time with Append.
type Grid[T any] struct {
	width int
	cells []T
}

// New returns an empty grid with the given row width.
func New[T any](width int) *Grid[T] {
	if width <= 0 {
		panic(fmt.Sprintf("grid: invalid width %d", width))
	}
	return &Grid[T]{width: width}
}

// Filled allocates a w*h grid with every cell set to a copy of value.
func Filled[T any](w, h int, value T) *Grid[T] {
	g := New[T](w)
	if h < 0 {
		h = 0
	}
	g.cells = make([]T, w*h)
	for i := range g.cells {
		g.cells[i] = value
	}
	return g
}

// FilledFunc allocates a w*h grid and builds every cell with fn. Use it for
// values that share backing memory when copied.
func FilledFunc[T any](w, h int, fn func() T) *Grid[T] {
	g := New[T](w)
	if h < 0 {
		h = 0
	}
	g.cells = make([]T, w*h)
	for i := range g.cells {
		g.cells[i] = fn()
	}
	return g
}

// Width returns the row width.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows, counting a partially filled last row.
func (g *Grid[T]) Height() int { return (len(g.cells) + g.width - 1) / g.width }

// Size returns the width and derived height.
func (g *Grid[T]) Size() (int, int) { return g.width, g.Height() }

// Len returns the number of stored cells.
func (g *Grid[T]) Len() int { return len(g.cells) }

// Cells exposes the backing slice so callers can read values in bulk.
func (g *Grid[T]) Cells() []T { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.width + x }

// Coords converts a linear index back to (x, y).
func (g *Grid[T]) Coords(i int) (int, int) { return i % g.width, i / g.width }

// InBounds reports whether (x, y) addresses a stored cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	if x < 0 || y < 0 || x >= g.width {
		return false
	}
	return g.Index(x, y) < len(g.cells)
}

func (g *Grid[T]) mustIndex(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: index (%d, %d) out of bounds for %dx%d", x, y, g.width, g.Height()))
	}
	return g.Index(x, y)
}

// Get returns the value at (x, y). It panics when the coordinates fall
// outside the stored cells.
func (g *Grid[T]) Get(x, y int) T { return g.cells[g.mustIndex(x, y)] }

// Ptr returns a pointer to the cell at (x, y) for in-place mutation.
func (g *Grid[T]) Ptr(x, y int) *T { return &g.cells[g.mustIndex(x, y)] }

// Set stores value at (x, y). It panics when the coordinates fall outside the
// stored cells.
func (g *Grid[T]) Set(x, y int, value T) { g.cells[g.mustIndex(x, y)] = value }

// Append adds one cell after the last stored cell in row-major order.
func (g *Grid[T]) Append(value T) { g.cells = append(g.cells, value) }

// Remove excises the cell at (x, y) and shifts every later cell one position
// to the left, returning the removed value.
func (g *Grid[T]) Remove(x, y int) T {
	i := g.mustIndex(x, y)
	v := g.cells[i]
	copy(g.cells[i:], g.cells[i+1:])
	var zero T
	g.cells[len(g.cells)-1] = zero
	g.cells = g.cells[:len(g.cells)-1]
	return v
}

// Contains reports whether any cell satisfies pred.
func (g *Grid[T]) Contains(pred func(T) bool) bool {
	for _, v := range g.cells {
		if pred(v) {
			return true
		}
	}
	return false
}

// All yields every cell with its linear index without consuming the grid.
func (g *Grid[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range g.cells {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Drain hands the cells over to the returned sequence and leaves the grid
// empty. The sequence can only be ranged over once.
func (g *Grid[T]) Drain() iter.Seq[T] {
	cells := g.cells
	g.cells = nil
	used := false
	return func(yield func(T) bool) {
		if used {
			return
		}
		used = true
		for i, v := range cells {
			cells[i] = *new(T)
			if !yield(v) {
				return
			}
		}
	}
}
