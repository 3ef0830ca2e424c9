package wfc

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// CellState classifies a cell by the number of tiles still possible for it.
type CellState uint8

const (
	// Contradiction means no tile is possible. It only exists transiently
	// while a propagation pass narrows a domain.
	Contradiction CellState = iota
	// Resolved means exactly one tile is possible.
	Resolved
	// Unresolved means two or more tiles are still possible.
	Unresolved
)

func (s CellState) String() string {
	switch s {
	case Contradiction:
		return "contradiction"
	case Resolved:
		return "resolved"
	case Unresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Domain is the set of tile identities still possible for a cell, one bit per
// alphabet member. Copies share storage; use Clone for an independent set.
type Domain struct {
	bits *bitset.BitSet
	n    uint
}

// NewDomain returns an empty domain sized for an alphabet of n tiles.
func NewDomain(n int) Domain {
	return Domain{bits: bitset.New(uint(n)), n: uint(n)}
}

// FullDomain returns a domain with every one of the n tiles possible.
func FullDomain(n int) Domain {
	d := NewDomain(n)
	d.Fill()
	return d
}

// Len returns the alphabet size the domain was built for.
func (d Domain) Len() int { return int(d.n) }

// Has reports whether tile identity id is still possible.
func (d Domain) Has(id int) bool { return d.bits.Test(uint(id)) }

// Add marks tile identity id as possible.
func (d Domain) Add(id int) { d.bits.Set(uint(id)) }

// Intersect narrows d to the tiles also present in o.
func (d Domain) Intersect(o Domain) { d.bits.InPlaceIntersection(o.bits) }

// Union widens d with every tile present in o.
func (d Domain) Union(o Domain) { d.bits.InPlaceUnion(o.bits) }

// Overlaps reports whether d and o share at least one tile, i.e. whether
// intersecting them would leave a non-empty domain.
func (d Domain) Overlaps(o Domain) bool { return d.bits.IntersectionCardinality(o.bits) > 0 }

// Count returns the number of possible tiles (the cell's entropy).
func (d Domain) Count() int { return int(d.bits.Count()) }

// Single returns the only possible identity when exactly one bit is set.
func (d Domain) Single() (int, bool) {
	if d.bits.Count() != 1 {
		return 0, false
	}
	i, _ := d.bits.NextSet(0)
	return int(i), true
}

// State classifies the domain.
func (d Domain) State() CellState {
	switch d.bits.Count() {
	case 0:
		return Contradiction
	case 1:
		return Resolved
	default:
		return Unresolved
	}
}

// Collapse clears every bit and sets only id.
func (d Domain) Collapse(id int) {
	d.bits.ClearAll()
	d.bits.Set(uint(id))
}

// Fill marks every tile as possible.
func (d Domain) Fill() {
	d.bits.ClearAll()
	if d.n > 0 {
		d.bits.FlipRange(0, d.n)
	}
}

// Clear removes every tile.
func (d Domain) Clear() { d.bits.ClearAll() }

// Clone returns an independent copy of d.
func (d Domain) Clone() Domain { return Domain{bits: d.bits.Clone(), n: d.n} }

// Equal reports whether both domains hold the same tiles.
func (d Domain) Equal(o Domain) bool { return d.bits.Equal(o.bits) }

// Each yields every possible identity in ascending order.
func (d Domain) Each() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
			if !yield(int(i)) {
				return
			}
		}
	}
}

// IDs returns the possible identities in ascending order.
func (d Domain) IDs() []int {
	ids := make([]int, 0, d.Count())
	for id := range d.Each() {
		ids = append(ids, id)
	}
	return ids
}
