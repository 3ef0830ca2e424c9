package wfc

import "slices"

// Alphabet is a TileSpace assembled from explicit rules. Identities follow the
// order in which tiles were first added. The zero value is not usable; build
// one with NewAlphabet.
type Alphabet[T comparable] struct {
	tiles     []T
	index     map[T]int
	neighbors [][]int
	weights   []map[int]int
	own       map[int]int
	fallback  int
}

// NewAlphabet returns an alphabet containing tiles in order. The first tile is
// the fallback until SetFallback says otherwise.
func NewAlphabet[T comparable](tiles ...T) *Alphabet[T] {
	a := &Alphabet[T]{index: make(map[T]int, len(tiles))}
	for _, t := range tiles {
		a.add(t)
	}
	return a
}

func (a *Alphabet[T]) add(t T) int {
	if id, ok := a.index[t]; ok {
		return id
	}
	id := len(a.tiles)
	a.tiles = append(a.tiles, t)
	a.index[t] = id
	a.neighbors = append(a.neighbors, nil)
	a.weights = append(a.weights, map[int]int{})
	return id
}

// Allow permits other to sit next to t with the given weight. Unknown tiles
// are appended to the alphabet. Allowing the same pair twice replaces the
// weight.
func (a *Alphabet[T]) Allow(t, other T, weight int) *Alphabet[T] {
	id := a.add(t)
	oid := a.add(other)
	if _, ok := a.weights[id][oid]; !ok {
		a.neighbors[id] = append(a.neighbors[id], oid)
	}
	a.weights[id][oid] = weight
	return a
}

// AllowSymmetric permits the pair in both directions.
func (a *Alphabet[T]) AllowSymmetric(t, other T, weight int) *Alphabet[T] {
	a.Allow(t, other, weight)
	if t != other {
		a.Allow(other, t, weight)
	}
	return a
}

// SetFallback designates the tile substituted for unresolvable cells.
func (a *Alphabet[T]) SetFallback(t T) *Alphabet[T] {
	a.fallback = a.add(t)
	return a
}

// SetWeight gives t its own weight, which replaces Compatibility(t, t) as
// its self bias during collapse.
func (a *Alphabet[T]) SetWeight(t T, weight int) *Alphabet[T] {
	id := a.add(t)
	if a.own == nil {
		a.own = map[int]int{}
	}
	a.own[id] = weight
	return a
}

// Weight returns the weight set by SetWeight, or Compatibility(t, t).
func (a *Alphabet[T]) Weight(t T) int {
	id, ok := a.index[t]
	if !ok {
		return 0
	}
	if w, ok := a.own[id]; ok {
		return w
	}
	return a.weights[id][id]
}

// Variants returns a copy of the tiles in identity order.
func (a *Alphabet[T]) Variants() []T { return slices.Clone(a.tiles) }

// Identity returns the tile's position in the alphabet, or -1 if it is not a
// member.
func (a *Alphabet[T]) Identity(t T) int {
	if id, ok := a.index[t]; ok {
		return id
	}
	return -1
}

// Compatibility returns the weight for other next to t, or 0 when the pair
// was never allowed.
func (a *Alphabet[T]) Compatibility(t, other T) int {
	id, ok := a.index[t]
	if !ok {
		return 0
	}
	oid, ok := a.index[other]
	if !ok {
		return 0
	}
	return a.weights[id][oid]
}

// AllowedNeighbors returns the tiles allowed next to t in the order they were
// allowed.
func (a *Alphabet[T]) AllowedNeighbors(t T) []T {
	id, ok := a.index[t]
	if !ok {
		return nil
	}
	out := make([]T, len(a.neighbors[id]))
	for i, oid := range a.neighbors[id] {
		out[i] = a.tiles[oid]
	}
	return out
}

// Fallback returns the designated fallback tile. It panics on an empty
// alphabet.
func (a *Alphabet[T]) Fallback() T { return a.tiles[a.fallback] }

// ContextFree builds an alphabet whose bias depends only on the tile itself:
// Compatibility(t, other) is weights[t] for every allowed other, and
// weights[t] is also the tile's own weight.
func ContextFree[T comparable](tiles []T, weights map[T]int, neighbors map[T][]T, fallback T) *Alphabet[T] {
	a := NewAlphabet(tiles...)
	for _, t := range tiles {
		a.SetWeight(t, weights[t])
		for _, nb := range neighbors[t] {
			a.Allow(t, nb, weights[t])
		}
	}
	return a.SetFallback(fallback)
}

// Permissive builds an alphabet where every pair, including a tile with
// itself, is allowed with the same weight.
func Permissive[T comparable](weight int, tiles ...T) *Alphabet[T] {
	a := NewAlphabet(tiles...)
	for _, t := range tiles {
		for _, other := range tiles {
			a.Allow(t, other, weight)
		}
	}
	return a
}
