//go:build ebiten

package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilewave/internal/core"
	"tilewave/internal/render"
)

// Overlay draws a toggleable heat map of candidate counts over the map.
type Overlay struct {
	sim     core.Sim
	scale   int
	show    bool
	painter *render.GridPainter
}

// NewOverlay constructs an overlay; it stays inert for sims without an
// entropy field.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update toggles the overlay on E.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		o.show = !o.show
	}
}

// Visible reports whether the heat map is shown.
func (o *Overlay) Visible() bool { return o.show }

// Draw paints the heat map when enabled.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(core.EntropyProvider)
	if !ok {
		return
	}
	counts, n := provider.EntropyField()
	o.painter.BlitEntropy(screen, counts, n, o.scale)
}
