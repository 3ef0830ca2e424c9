package checker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tilewave/pkg/wfc"
)

func TestSpaceWeights(t *testing.T) {
	s := Space(4)
	require.Equal(t, []Tile{Light, Dark}, s.Variants())
	require.Equal(t, 1, s.Compatibility(Light, Light))
	require.Equal(t, 4, s.Compatibility(Dark, Light))
	require.Equal(t, 1, Space(-2).Compatibility(Light, Dark))
	require.Equal(t, Light, s.Fallback())
}

func TestSpaceAlwaysSolvesExactly(t *testing.T) {
	for _, mode := range []wfc.Mode{wfc.ModeGlobalEntropy, wfc.ModeScanOrder} {
		cfg := wfc.DefaultConfig()
		cfg.Width, cfg.Height = 9, 7
		cfg.Mode = mode
		g, err := wfc.NewWithConfig(Space(6), cfg)
		require.NoError(t, err)
		for range cfg.Width * cfg.Height {
			if g.Step() {
				break
			}
		}
		out := g.Finish()
		require.True(t, g.Stats().Exact(), "%s: %+v", mode, g.Stats())
		require.Equal(t, 63, out.Len())
	}
}

func TestTileText(t *testing.T) {
	require.Equal(t, "dark", Dark.String())
	require.Equal(t, '.', Light.Rune())
	require.NotEqual(t, Light.Color(), Dark.Color())
}
