package config

import (
	"image/color"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/stretchr/testify/require"

	"tilewave/pkg/wfc"
)

func TestLoadTileset(t *testing.T) {
	ts, err := LoadTileset("testdata/coast.hcl")
	require.NoError(t, err)
	require.Equal(t, "coast", ts.Name)

	a := ts.Alphabet
	require.Equal(t, []string{"water", "sand", "grass"}, a.Variants())
	require.Equal(t, "sand", a.Fallback())
	require.Equal(t, []string{"sand", "water", "grass"}, a.AllowedNeighbors("sand"))

	require.Equal(t, 4, a.Compatibility("water", "water"))
	require.Equal(t, 4, a.Compatibility("water", "sand"))
	require.Equal(t, 2, a.Compatibility("sand", "sand"))
	require.Equal(t, 3, a.Compatibility("sand", "water"), "bias overrides the tile weight")
	require.Equal(t, 1, a.Compatibility("sand", "grass"))
	require.Zero(t, a.Compatibility("water", "grass"))

	require.Equal(t, color.RGBA{R: 0xde, G: 0xfc, B: 0x46, A: 0xff}, ts.Color("sand"))
	require.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 255}, ts.Color("lava"))
	require.Equal(t, '~', ts.Glyph("water"))
	require.Equal(t, 's', ts.Glyph("sand"))
}

func TestLoadedTilesetGenerates(t *testing.T) {
	ts, err := LoadTileset("testdata/coast.hcl")
	require.NoError(t, err)
	out, err := wfc.Generate(ts.Alphabet, 10, 6)
	require.NoError(t, err)
	for _, tile := range out.Cells() {
		require.Contains(t, ts.Alphabet.Variants(), tile)
	}
}

func TestParseTilesetDefaults(t *testing.T) {
	src := `
tile "a" {
  neighbors = ["a", "b"]
}
tile "b" {
  neighbors = ["a"]
}
`
	ts, err := ParseTileset([]byte(src), "dir/plain.hcl")
	require.NoError(t, err)
	require.Equal(t, "plain", ts.Name)
	require.Equal(t, "a", ts.Alphabet.Fallback())
	require.Equal(t, 1, ts.Alphabet.Compatibility("a", "b"))
	require.Zero(t, ts.Alphabet.Compatibility("b", "b"))
}

func TestParseTilesetDiagnostics(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		summary string
	}{
		{"syntax", `tile "a" {`, ""},
		{"no tiles", `fallback = "a"`, "No tiles"},
		{"unknown neighbor", `tile "a" { neighbors = ["b"] }`, "Unknown neighbor"},
		{"unknown fallback", "fallback = \"z\"\ntile \"a\" { neighbors = [\"a\"] }", "Unknown fallback"},
		{"duplicate", "tile \"a\" {}\ntile \"a\" {}", "Duplicate tile"},
		{"bad color", `tile "a" { color = "green" }`, "Invalid color"},
		{"negative weight", `tile "a" { weight = -1 }`, "Negative weight"},
		{"negative bias", "tile \"a\" {\n  neighbors = [\"a\"]\n  bias = { a = -2 }\n}", "Negative weight"},
		{"fractional bias", "tile \"a\" {\n  neighbors = [\"a\"]\n  bias = { a = 1.5 }\n}", "Invalid bias"},
		{"string bias", "tile \"a\" {\n  neighbors = [\"a\"]\n  bias = { a = \"x\" }\n}", "Invalid bias"},
		{"list bias", "tile \"a\" {\n  neighbors = [\"a\"]\n  bias = [1]\n}", "Invalid bias"},
		{"bias non-neighbor", "tile \"a\" {\n  neighbors = [\"a\"]\n  bias = { b = 1 }\n}\ntile \"b\" {}", "Bias for a non-neighbor"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTileset([]byte(tc.src), tc.name+".hcl")
			require.Error(t, err)
			var diags hcl.Diagnostics
			require.ErrorAs(t, err, &diags)
			require.True(t, diags.HasErrors())
			if tc.summary != "" {
				require.Equal(t, tc.summary, diags[0].Summary)
			}
		})
	}
}

func TestDiagnosticsCarryPositions(t *testing.T) {
	src := "tile \"a\" {\n  neighbors = [\"a\", \"ghost\"]\n}\n"
	_, err := ParseTileset([]byte(src), "ghost.hcl")
	var diags hcl.Diagnostics
	require.ErrorAs(t, err, &diags)
	require.NotNil(t, diags[0].Subject)
	require.Equal(t, "ghost.hcl", diags[0].Subject.Filename)
	require.Equal(t, 1, diags[0].Subject.Start.Line)
	require.Contains(t, err.Error(), "ghost")
}

func TestLoadTilesetMissingFile(t *testing.T) {
	_, err := LoadTileset("testdata/missing.hcl")
	require.ErrorContains(t, err, "failed to read tileset")
}

func TestParseHexColor(t *testing.T) {
	c, err := parseHexColor("#01020380")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 0x80}, c)
	_, err = parseHexColor("#zzzzzz")
	require.Error(t, err)
}
