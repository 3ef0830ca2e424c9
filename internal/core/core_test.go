package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedStepDue(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	require.Equal(t, 1, fs.Due(), "the first call runs one step immediately")
	require.Equal(t, 0, fs.Due())

	clock = clock.Add(250 * time.Millisecond)
	require.Equal(t, 2, fs.Due())

	clock = clock.Add(50 * time.Millisecond)
	require.Equal(t, 1, fs.Due(), "leftover time carries over")

	clock = clock.Add(time.Hour)
	require.Equal(t, 64, fs.Due(), "catch-up is capped")
}

func TestFixedStepRate(t *testing.T) {
	fs := NewFixedStep(0)
	require.Equal(t, 60, fs.Rate())
	fs.SetRate(250)
	require.Equal(t, 250, fs.Rate())
	fs.SetRate(1 << 40)
	require.Equal(t, maxRate, fs.Rate())
}

func TestByteGrid(t *testing.T) {
	g := NewByteGrid(0, 3)
	require.Equal(t, 1, g.W)
	g.Cells()[g.Index(0, 2)] = 4
	require.Equal(t, 1, g.Count(4))
	require.Equal(t, 2, g.Count(0))
	g.Clear()
	require.Equal(t, 3, g.Count(0))
}

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("zz-test", nil)
	_, ok := Sims()["zz-test"]
	require.False(t, ok)

	Register("zz-test", func(map[string]string) (Sim, error) { return nil, nil })
	t.Cleanup(func() { delete(sims, "zz-test") })
	require.Contains(t, Names(), "zz-test")
}

func TestParameterSnapshotLines(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name: "Map",
		Params: []Parameter{
			IntParam("w", "Width", 3),
			BoolParam("cube", "Cube affinity", true),
			StringParam("mode", "Mode", "scan"),
			Int64Param("seed", "Seed", 9),
		},
	}}}
	var buf bytes.Buffer
	_, err := snap.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "Map: Width = 3\nMap: Cube affinity = true\nMap: Mode = scan\nMap: Seed = 9\n", buf.String())
}
