package wavesim

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"tilewave/internal/core"
	"tilewave/pkg/tilesets/terrain"
	"tilewave/pkg/wfc"
)

func smallConfig() wfc.Config {
	cfg := DefaultConfig()
	cfg.Width = 12
	cfg.Height = 9
	cfg.Seed = 5
	return cfg
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w":      "20",
		"h":      "10",
		"seed":   "-3",
		"mode":   "scan",
		"radius": "2",
		"cube":   "true",
	})
	require.Equal(t, 20, c.Width)
	require.Equal(t, 10, c.Height)
	require.Equal(t, int64(-3), c.Seed)
	require.Equal(t, wfc.ModeScanOrder, c.Mode)
	require.Equal(t, 2, c.Radius)
	require.True(t, c.CubeAffinity)

	d := FromMap(map[string]string{"w": "-1", "mode": "spiral", "radius": "x"})
	require.Equal(t, DefaultConfig(), d)
	require.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestSimRunsToCompletion(t *testing.T) {
	s, err := New(Terrain(), smallConfig())
	require.NoError(t, err)
	require.Equal(t, core.Size{W: 12, H: 9}, s.Size())
	require.Len(t, s.Cells(), 12*9)
	require.Len(t, s.Palette(), len(terrain.Tiles())+1)
	require.Equal(t, Unresolved, s.Palette()[0])

	steps := 0
	for !s.Step() {
		steps++
		require.LessOrEqual(t, steps, 12*9)
	}
	for _, v := range s.Cells() {
		require.NotZero(t, v, "every cell resolved")
	}
	require.Equal(t, 12*9, s.Resolved())

	s.Finish()
	require.True(t, s.Finished())
	require.True(t, s.Step(), "stepping a finished sim is a no-op")
	out := s.Result()
	require.NotNil(t, out)
	for i, tile := range out.Cells() {
		require.Equal(t, uint8(tile)+1, s.Cells()[i])
	}
}

func TestSimFinishMidway(t *testing.T) {
	s, err := New(TerrainClassic(), smallConfig())
	require.NoError(t, err)
	s.Step()
	s.Finish()
	require.Equal(t, 12*9, s.Resolved())
	for _, v := range s.Cells() {
		require.NotZero(t, v)
	}
	require.Positive(t, s.Stats().Collapses)
}

func TestSimResetIsDeterministic(t *testing.T) {
	s, err := New(Terrain(), smallConfig())
	require.NoError(t, err)
	run := func() []uint8 {
		for !s.Step() {
		}
		s.Finish()
		return append([]uint8(nil), s.Cells()...)
	}
	first := run()
	s.Reset(0)
	require.False(t, s.Finished())
	require.Equal(t, first, run())

	s.Reset(99)
	require.Equal(t, "99", paramValue(s.Parameters(), "seed"))
}

// shrinkingSpace reports its tiles once and an empty alphabet afterwards.
type shrinkingSpace struct {
	*wfc.Alphabet[string]
	calls *int
}

func (s shrinkingSpace) Variants() []string {
	*s.calls++
	if *s.calls > 1 {
		return nil
	}
	return s.Alphabet.Variants()
}

func TestSimResetKeepsRunWhenRebuildFails(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	calls := 0
	set := Tileset[string]{Name: "shrinking", Space: shrinkingSpace{Alphabet: wfc.Permissive(1, "A", "B"), calls: &calls}}
	s, err := New(set, smallConfig())
	require.NoError(t, err)
	s.Step()
	steps := s.Stats().Steps

	s.Reset(77)
	require.Contains(t, buf.String(), "Failed to reset map.")
	require.Contains(t, buf.String(), wfc.ErrEmptyAlphabet.Error())
	require.Equal(t, steps, s.Stats().Steps, "the current run is kept")
	require.Equal(t, "5", paramValue(s.Parameters(), "seed"))
}

func TestSimRejectsBadConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Width = 0
	_, err := New(Terrain(), cfg)
	require.ErrorIs(t, err, wfc.ErrInvalidSize)
}

func TestSimGrayPaletteWithoutColors(t *testing.T) {
	set := Tileset[string]{Name: "plain", Space: wfc.Permissive(1, "a", "b", "c")}
	s, err := New(set, smallConfig())
	require.NoError(t, err)
	p := s.Palette()
	require.Len(t, p, 4)
	require.Equal(t, uint8(40), p[1].R)
	require.Equal(t, uint8(240), p[3].R)
}

func TestRegistryFactories(t *testing.T) {
	for _, name := range []string{"terrain", "terrain-classic", "checker"} {
		f, ok := core.Sims()[name]
		require.True(t, ok, name)
		sim, err := f(map[string]string{"w": "8", "h": "4"})
		require.NoError(t, err)
		require.Equal(t, name, sim.Name())
		require.Equal(t, core.Size{W: 8, H: 4}, sim.Size())
		_, ok = sim.(core.Finisher)
		require.True(t, ok)
		_, ok = sim.(core.PaletteProvider)
		require.True(t, ok)
		_, ok = sim.(core.ParameterProvider)
		require.True(t, ok)
	}
}

func paramValue(snap core.ParameterSnapshot, key string) string {
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value
			}
		}
	}
	return ""
}

func TestEntropyField(t *testing.T) {
	s, err := New(Terrain(), smallConfig())
	require.NoError(t, err)
	counts, n := s.EntropyField()
	require.Equal(t, len(terrain.Tiles()), n)
	require.Len(t, counts, 12*9)
	for _, c := range counts {
		require.Equal(t, n, c, "a fresh map is fully open")
	}
	s.Finish()
	counts, _ = s.EntropyField()
	for _, c := range counts {
		require.Equal(t, 1, c)
	}
}

func TestWriteText(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 4, 2
	s, err := New(Checker(), cfg)
	require.NoError(t, err)
	var buf strings.Builder
	require.Error(t, s.WriteText(&buf))

	s.Finish()
	require.NoError(t, s.WriteText(&buf))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		require.Len(t, line, 4)
		require.Empty(t, strings.Trim(line, ".#"))
	}
}

func TestOpen(t *testing.T) {
	sim, err := Open("checker", "", map[string]string{"w": "5", "h": "3"})
	require.NoError(t, err)
	require.Equal(t, core.Size{W: 5, H: 3}, sim.Size())

	_, err = Open("nope", "", nil)
	require.ErrorContains(t, err, "unknown tileset")

	sim, err = Open("ignored", "../../config/testdata/coast.hcl", map[string]string{"w": "6", "h": "4"})
	require.NoError(t, err)
	require.Equal(t, "coast", sim.Name())
	require.Len(t, sim.(core.PaletteProvider).Palette(), 4)

	_, err = Open("", "missing.hcl", nil)
	require.Error(t, err)
}

func TestRunMatchesStepping(t *testing.T) {
	stepped, err := New(TerrainClassic(), smallConfig())
	require.NoError(t, err)
	for range 12 * 9 {
		if stepped.Step() {
			break
		}
	}
	stepped.Finish()

	ran, err := New(TerrainClassic(), smallConfig())
	require.NoError(t, err)
	ran.Run()
	require.True(t, ran.Finished())
	require.Equal(t, stepped.Cells(), ran.Cells())
	require.Equal(t, stepped.Stats(), ran.Stats())
}
