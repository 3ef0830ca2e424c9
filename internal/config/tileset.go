// Package config loads tile alphabets from HCL files.
//
// A file declares one tile block per tile. Each block lists the tiles allowed
// next to it and a default weight for those pairs; the optional bias map
// overrides the weight per neighbor and may use the max and min functions:
//
//	name     = "coast"
//	fallback = "sand"
//
//	tile "sand" {
//	  color     = "#defc46"
//	  glyph     = "."
//	  weight    = 2
//	  neighbors = ["sand", "water", "grass"]
//	  bias      = { water = max(1, 3) }
//	}
//
// A tile borders itself only when it names itself among its neighbors.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"tilewave/pkg/wfc"
)

// Tileset is a tile alphabet decoded from a file, keyed by tile name.
type Tileset struct {
	Name     string
	Alphabet *wfc.Alphabet[string]

	colors map[string]color.RGBA
	glyphs map[string]rune
}

// Color returns the display color of a tile, gray when the file gives none.
func (t *Tileset) Color(name string) color.RGBA {
	if c, ok := t.colors[name]; ok {
		return c
	}
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

// Glyph returns the text glyph of a tile, defaulting to its first letter.
func (t *Tileset) Glyph(name string) rune {
	if g, ok := t.glyphs[name]; ok {
		return g
	}
	r, _ := utf8.DecodeRuneInString(name)
	return r
}

type tilesetFile struct {
	Name     string         `hcl:"name,optional"`
	Fallback hcl.Expression `hcl:"fallback,optional"`
	Tiles    []tileBlock    `hcl:"tile,block"`
}

type tileBlock struct {
	Name      string         `hcl:"name,label"`
	Color     string         `hcl:"color,optional"`
	Glyph     string         `hcl:"glyph,optional"`
	Weight    *int           `hcl:"weight,optional"`
	Neighbors []string       `hcl:"neighbors,optional"`
	Bias      hcl.Expression `hcl:"bias,optional"`

	DeclRange hcl.Range `hcl:",def_range"`
}

var functions = map[string]function.Function{
	"max": stdlib.MaxFunc,
	"min": stdlib.MinFunc,
}

// LoadTileset reads and decodes the tileset file at path.
func LoadTileset(path string) (*Tileset, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tileset %s: %w", path, err)
	}
	return ParseTileset(src, path)
}

// ParseTileset decodes tileset source. filename is used for diagnostics and,
// when the file has no name attribute, as the tileset name.
func ParseTileset(src []byte, filename string) (*Tileset, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse tileset %s: %w", filename, diags)
	}

	var raw tilesetFile
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode tileset %s: %w", filename, diags)
	}

	ts, diags := build(raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid tileset %s: %w", filename, diags)
	}
	if ts.Name == "" {
		ts.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return ts, nil
}

func build(raw tilesetFile) (*Tileset, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	if len(raw.Tiles) == 0 {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "No tiles",
			Detail:   "A tileset needs at least one tile block.",
		})
	}

	ts := &Tileset{
		Name:   raw.Name,
		colors: map[string]color.RGBA{},
		glyphs: map[string]rune{},
	}
	names := make([]string, 0, len(raw.Tiles))
	declared := map[string]hcl.Range{}
	for _, tb := range raw.Tiles {
		if prev, ok := declared[tb.Name]; ok {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate tile",
				Detail:   fmt.Sprintf("Tile %q was already declared at %s.", tb.Name, prev),
				Subject:  tb.DeclRange.Ptr(),
			})
			continue
		}
		declared[tb.Name] = tb.DeclRange
		names = append(names, tb.Name)
	}
	ts.Alphabet = wfc.NewAlphabet(names...)

	for _, tb := range raw.Tiles {
		diags = append(diags, ts.addTile(tb, declared)...)
	}

	diags = append(diags, ts.setFallback(raw.Fallback, declared)...)
	return ts, diags
}

func (ts *Tileset) addTile(tb tileBlock, declared map[string]hcl.Range) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if tb.Color != "" {
		c, err := parseHexColor(tb.Color)
		if err != nil {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid color",
				Detail:   fmt.Sprintf("Tile %q: %s.", tb.Name, err),
				Subject:  tb.DeclRange.Ptr(),
			})
		} else {
			ts.colors[tb.Name] = c
		}
	}
	if tb.Glyph != "" {
		r, _ := utf8.DecodeRuneInString(tb.Glyph)
		ts.glyphs[tb.Name] = r
	}

	weight := 1
	if tb.Weight != nil {
		weight = *tb.Weight
	}
	if weight < 0 {
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Negative weight",
			Detail:   fmt.Sprintf("Tile %q has weight %d; weights must be zero or more.", tb.Name, weight),
			Subject:  tb.DeclRange.Ptr(),
		})
		return diags
	}

	bias, biasDiags := decodeBias(tb.Bias)
	diags = append(diags, biasDiags...)

	listed := map[string]bool{}
	for _, nb := range tb.Neighbors {
		if _, ok := declared[nb]; !ok {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unknown neighbor",
				Detail:   fmt.Sprintf("Tile %q lists neighbor %q, which is not declared.", tb.Name, nb),
				Subject:  tb.DeclRange.Ptr(),
			})
			continue
		}
		listed[nb] = true
		w := weight
		if b, ok := bias[nb]; ok {
			w = b
		}
		ts.Alphabet.Allow(tb.Name, nb, w)
	}
	for nb := range bias {
		if listed[nb] {
			continue
		}
		diags = diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Bias for a non-neighbor",
			Detail:   fmt.Sprintf("Tile %q biases %q, which is not among its neighbors.", tb.Name, nb),
			Subject:  tb.Bias.Range().Ptr(),
		})
	}
	return diags
}

func (ts *Tileset) setFallback(expr hcl.Expression, declared map[string]hcl.Range) hcl.Diagnostics {
	v, diags := expr.Value(nil)
	if diags.HasErrors() || v.IsNull() {
		return diags
	}
	var name string
	if d := gohcl.DecodeExpression(expr, nil, &name); d.HasErrors() {
		return append(diags, d...)
	}
	if _, ok := declared[name]; !ok {
		return diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unknown fallback",
			Detail:   fmt.Sprintf("Fallback tile %q is not declared.", name),
			Subject:  expr.Range().Ptr(),
		})
	}
	ts.Alphabet.SetFallback(name)
	return diags
}

func decodeBias(expr hcl.Expression) (map[string]int, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}
	v, diags := expr.Value(&hcl.EvalContext{Functions: functions})
	if diags.HasErrors() || v.IsNull() {
		return nil, diags
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, diags.Append(&hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid bias",
			Detail:   "The bias attribute must be a map of neighbor names to weights.",
			Subject:  expr.Range().Ptr(),
		})
	}

	out := map[string]int{}
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		name := k.AsString()
		var w int
		if ev.IsNull() || !ev.Type().Equals(cty.Number) {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid bias",
				Detail:   fmt.Sprintf("Bias for %q must be a number.", name),
				Subject:  expr.Range().Ptr(),
			})
			continue
		}
		if err := gocty.FromCtyValue(ev, &w); err != nil {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid bias",
				Detail:   fmt.Sprintf("Bias for %q: %s.", name, err),
				Subject:  expr.Range().Ptr(),
			})
			continue
		}
		if w < 0 {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Negative weight",
				Detail:   fmt.Sprintf("Bias for %q is %d; weights must be zero or more.", name, w),
				Subject:  expr.Range().Ptr(),
			})
			continue
		}
		out[name] = w
	}
	return out, diags
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not hexadecimal", s)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
