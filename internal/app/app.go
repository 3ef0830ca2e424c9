//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"tilewave/internal/core"
	"tilewave/internal/render"
	"tilewave/internal/ui"
)

// Game adapts a sim to the ebiten.Game interface. Generator steps are paced
// by a fixed-step timer so propagation stays watchable at any frame rate.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep
	palette []color.RGBA

	scale      int
	hudWidth   int
	autoFinish bool
	paused     bool
	tickOnce   bool
	done       bool
	seed       int64
}

// New constructs a Game for the provided sim.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:        sim,
		painter:    render.NewGridPainter(size.W, size.H),
		overlay:    ui.NewOverlay(sim, cfg.PixelScale()),
		hud:        ui.NewHUD(sim, cfg.PanelWidth()),
		pacer:      core.NewFixedStep(cfg.Rate),
		scale:      cfg.PixelScale(),
		hudWidth:   cfg.PanelWidth(),
		autoFinish: cfg.AutoFinish,
		seed:       cfg.Seed,
	}
	if p, ok := sim.(core.PaletteProvider); ok {
		g.palette = p.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Reset restarts generation with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.done = false
}

// Update handles input and advances the generator.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.pacer.SetRate(g.pacer.Rate() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.pacer.SetRate(max(g.pacer.Rate()/2, 1))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.finish()
	}
	g.overlay.Update()

	steps := g.pacer.Due()
	if g.paused {
		steps = 0
	}
	if g.tickOnce {
		steps = max(steps, 1)
		g.tickOnce = false
	}
	for range steps {
		if g.done {
			break
		}
		g.done = g.sim.Step()
	}
	if g.done && g.autoFinish {
		g.finish()
	}
	g.hud.Update(g.status())
	return nil
}

func (g *Game) finish() {
	if f, ok := g.sim.(core.Finisher); ok && !f.Finished() {
		f.Finish()
	}
	g.done = true
}

func (g *Game) status() string {
	state := "running"
	switch {
	case g.finished():
		state = "finished"
	case g.done:
		state = "resolved"
	case g.paused:
		state = "paused"
	}
	return fmt.Sprintf("%s  %d steps/s", state, g.pacer.Rate())
}

func (g *Game) finished() bool {
	f, ok := g.sim.(core.Finisher)
	return ok && f.Finished()
}

// Draw renders the map, the optional heat map and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
