//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"tilewave/internal/core"
)

// HUD renders the parameter panel to the right of the map view.
type HUD struct {
	sim      core.Sim
	width    int
	snapshot core.ParameterSnapshot
	status   string
}

// NewHUD constructs a HUD for the provided sim and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	return &HUD{sim: sim, width: max(width, 0)}
}

// Update refreshes the cached parameter snapshot and the status line.
func (h *HUD) Update(status string) {
	if h == nil {
		return
	}
	h.status = status
	if provider, ok := h.sim.(core.ParameterProvider); ok {
		h.snapshot = provider.Parameters()
		return
	}
	h.snapshot = core.ParameterSnapshot{}
}

// Draw paints the panel at offsetX, next to a map drawn at scale.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	size := h.sim.Size()
	height := float32(size.H * max(scale, 1))
	x := float32(offsetX)
	vector.DrawFilledRect(screen, x, 0, float32(h.width), height, panelColor, false)

	y := panelPadding
	ebitenutil.DebugPrintAt(screen, h.sim.Name(), offsetX+panelPadding, y)
	y += lineHeight
	if h.status != "" {
		ebitenutil.DebugPrintAt(screen, h.status, offsetX+panelPadding, y)
		y += lineHeight
	}

	total := size.W * size.H
	for _, g := range h.snapshot.Groups {
		y += lineHeight / 2
		ebitenutil.DebugPrintAt(screen, g.Name, offsetX+panelPadding, y)
		y += lineHeight
		for _, p := range g.Params {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("  %s: %s", p.Label, p.Value), offsetX+panelPadding, y)
			y += lineHeight
			if p.Key == "resolved" && total > 0 {
				h.drawProgress(screen, offsetX, y, resolvedFraction(p.Value, total))
				y += lineHeight
			}
		}
	}

	y += lineHeight / 2
	for _, line := range keyHelp {
		ebitenutil.DebugPrintAt(screen, line, offsetX+panelPadding, y)
		y += lineHeight
	}
}

func (h *HUD) drawProgress(screen *ebiten.Image, offsetX, y int, frac float64) {
	w := float32(h.width - 2*panelPadding)
	x := float32(offsetX + panelPadding)
	vector.DrawFilledRect(screen, x, float32(y+4), w, 6, trackColor, false)
	vector.DrawFilledRect(screen, x, float32(y+4), w*float32(frac), 6, fillColor, false)
}

func resolvedFraction(value string, total int) float64 {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return min(max(float64(n)/float64(total), 0), 1)
}

var keyHelp = []string{
	"Space pause  N step",
	"F finish  E entropy",
	"R reset  S reseed",
	"+/- speed  Q quit",
}

var (
	panelColor = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	trackColor = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fillColor  = color.RGBA{R: 90, G: 150, B: 100, A: 255}
)

const (
	panelPadding = 12
	lineHeight   = 16
)
