package wfc

import "fmt"

// TileSpace is the capability set a tile alphabet supplies to the engine.
//
// Variants must return the same ordered list on every call during a run, and
// Identity must map each variant onto a distinct integer in [0, len(Variants)).
// Compatibility returns a non-negative weight for placing other next to t;
// it is ignored (treated as 0) for pairs that AllowedNeighbors does not list.
// Fallback is substituted for cells that cannot be resolved and must be one
// of the variants.
type TileSpace[T comparable] interface {
	Variants() []T
	Identity(t T) int
	Compatibility(t, other T) int
	AllowedNeighbors(t T) []T
	Fallback() T
}

// Weighted is an optional TileSpace capability giving each tile its own
// weight, used as the self bias when a cell is collapsed. Spaces without it
// use Compatibility(t, t).
type Weighted[T comparable] interface {
	Weight(t T) int
}

// alphabet is the immutable, dense form of a TileSpace built once per
// generator. Tiles are addressed by identity everywhere in the engine.
type alphabet[T comparable] struct {
	tiles    []T
	allowed  []Domain
	weights  []int
	self     []int
	fallback int
}

func (a *alphabet[T]) size() int { return len(a.tiles) }

// weight returns Compatibility(a, b) for allowed pairs and 0 otherwise.
func (a *alphabet[T]) weight(from, to int) int { return a.weights[from*len(a.tiles)+to] }

func compile[T comparable](space TileSpace[T]) (*alphabet[T], error) {
	variants := space.Variants()
	n := len(variants)
	if n == 0 {
		return nil, ErrEmptyAlphabet
	}

	a := &alphabet[T]{
		tiles:   make([]T, n),
		allowed: make([]Domain, n),
		weights: make([]int, n*n),
		self:    make([]int, n),
	}
	seen := make([]bool, n)
	for _, t := range variants {
		id := space.Identity(t)
		if id < 0 || id >= n {
			return nil, fmt.Errorf("tile %v has identity %d, alphabet size %d: %w", t, id, n, ErrIdentityRange)
		}
		if seen[id] {
			return nil, fmt.Errorf("tile %v reuses identity %d: %w", t, id, ErrDuplicateIdentity)
		}
		seen[id] = true
		a.tiles[id] = t
	}

	lookup := func(t T) (int, bool) {
		id := space.Identity(t)
		if id < 0 || id >= n || a.tiles[id] != t {
			return 0, false
		}
		return id, true
	}

	for id, t := range a.tiles {
		mask := NewDomain(n)
		for _, other := range space.AllowedNeighbors(t) {
			oid, ok := lookup(other)
			if !ok {
				return nil, fmt.Errorf("neighbor %v of tile %v: %w", other, t, ErrUnknownTile)
			}
			w := space.Compatibility(t, other)
			if w < 0 {
				return nil, fmt.Errorf("weight %d for %v next to %v: %w", w, t, other, ErrNegativeWeight)
			}
			mask.Add(oid)
			a.weights[id*n+oid] = w
		}
		a.allowed[id] = mask
		a.self[id] = a.weights[id*n+id]
	}

	if ws, ok := space.(Weighted[T]); ok {
		for id, t := range a.tiles {
			w := ws.Weight(t)
			if w < 0 {
				return nil, fmt.Errorf("own weight %d for %v: %w", w, t, ErrNegativeWeight)
			}
			a.self[id] = w
		}
	}

	fb, ok := lookup(space.Fallback())
	if !ok {
		return nil, fmt.Errorf("fallback tile %v: %w", space.Fallback(), ErrUnknownTile)
	}
	a.fallback = fb
	return a, nil
}
