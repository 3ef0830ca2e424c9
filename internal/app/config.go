package app

import (
	"flag"
	"strconv"
)

// Config holds the window and generator settings of the interactive viewer.
type Config struct {
	Tileset string
	File    string
	Width   int
	Height  int
	Seed    int64
	Mode    string
	Radius  int
	Cube    bool

	Scale      int
	TPS        int
	Rate       int
	HUDWidth   int
	AutoFinish bool
}

// NewConfig returns the viewer defaults.
func NewConfig() *Config {
	return &Config{
		Tileset:  "terrain",
		Width:    96,
		Height:   64,
		Seed:     1337,
		Mode:     "entropy",
		Radius:   1,
		Scale:    8,
		TPS:      60,
		Rate:     120,
		HUDWidth: 220,
	}
}

// PixelScale returns the on-screen size of one cell, at least 1.
func (c *Config) PixelScale() int { return max(c.Scale, 1) }

// PanelWidth returns the side panel width, 0 when hidden.
func (c *Config) PanelWidth() int { return max(c.HUDWidth, 0) }

// Bind registers the config fields as flags on fs.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Tileset, "tileset", c.Tileset, "built-in tileset name")
	fs.StringVar(&c.File, "file", c.File, "HCL tileset file (overrides -tileset)")
	fs.IntVar(&c.Width, "w", c.Width, "map width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "map height in cells")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.StringVar(&c.Mode, "mode", c.Mode, "cell selection: entropy or scan")
	fs.IntVar(&c.Radius, "radius", c.Radius, "neighborhood radius")
	fs.BoolVar(&c.Cube, "cube", c.Cube, "cube neighbor affinities")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "window updates per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generator steps per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "side panel width in pixels, 0 to hide")
	fs.BoolVar(&c.AutoFinish, "finish", c.AutoFinish, "finish the map automatically once every cell is resolved")
}

// Params returns the generator settings as sim factory parameters.
func (c *Config) Params() map[string]string {
	return map[string]string{
		"w":      strconv.Itoa(c.Width),
		"h":      strconv.Itoa(c.Height),
		"seed":   strconv.FormatInt(c.Seed, 10),
		"mode":   c.Mode,
		"radius": strconv.Itoa(c.Radius),
		"cube":   strconv.FormatBool(c.Cube),
	}
}
