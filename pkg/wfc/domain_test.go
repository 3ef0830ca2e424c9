package wfc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDomainAlgebra(t *testing.T) {
	full := FullDomain(70)
	require.Equal(t, 70, full.Count())
	require.Equal(t, Unresolved, full.State())

	a := NewDomain(70)
	a.Add(3)
	a.Add(65)
	b := NewDomain(70)
	b.Add(65)
	b.Add(10)

	u := a.Clone()
	u.Union(b)
	require.Equal(t, []int{3, 10, 65}, u.IDs())

	a.Intersect(b)
	require.Equal(t, []int{65}, a.IDs())
	id, ok := a.Single()
	require.True(t, ok)
	require.Equal(t, 65, id)
	require.Equal(t, Resolved, a.State())

	require.True(t, u.Overlaps(b))
	empty := NewDomain(70)
	require.False(t, u.Overlaps(empty))
	require.Equal(t, Contradiction, empty.State())
	_, ok = empty.Single()
	require.False(t, ok)
	_, ok = u.Single()
	require.False(t, ok, "Single needs exactly one bit")
}

func TestDomainCollapseFillClear(t *testing.T) {
	d := FullDomain(5)
	d.Collapse(2)
	require.Equal(t, []int{2}, d.IDs())

	d.Fill()
	require.Equal(t, []int{0, 1, 2, 3, 4}, d.IDs())
	require.False(t, d.Has(5))

	d.Clear()
	require.Zero(t, d.Count())
}

func TestDomainCloneIsIndependent(t *testing.T) {
	d := FullDomain(4)
	c := d.Clone()
	c.Collapse(1)
	require.Equal(t, 4, d.Count())
	require.False(t, d.Equal(c))
	require.True(t, c.Equal(c.Clone()))
}

func TestDomainEachStopsEarly(t *testing.T) {
	d := FullDomain(10)
	var seen []int
	for id := range d.Each() {
		if id == 3 {
			break
		}
		seen = append(seen, id)
	}
	require.Equal(t, []int{0, 1, 2}, seen)
}

func TestCellStateString(t *testing.T) {
	require.Equal(t, "contradiction", Contradiction.String())
	require.Equal(t, "resolved", Resolved.String())
	require.Equal(t, "unresolved", Unresolved.String())
}
