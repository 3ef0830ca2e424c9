package core

import (
	"image/color"
	"io"
	"sort"
)

// Size describes the dimensions of a generated map.
type Size struct {
	W int
	H int
}

// Sim is the contract a steppable, renderable generator exposes to the
// window and the headless tools. Cells holds palette indices, with 0 reserved
// for cells that are not resolved yet.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() bool
	Cells() []uint8
}

// PaletteProvider maps cell values to display colors.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Finisher is implemented by sims that can force-resolve every cell.
type Finisher interface {
	Finish()
	Finished() bool
}

// Runner is implemented by sims that can generate to completion in one call.
type Runner interface {
	Run()
}

// EntropyProvider exposes per-cell candidate counts and the alphabet size.
type EntropyProvider interface {
	EntropyField() ([]int, int)
}

// TextWriter is implemented by sims that can print a finished map as text.
type TextWriter interface {
	WriteText(w io.Writer) error
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a tileset factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
