// Command wfc-gen generates one map headlessly and writes it as a PNG or, with
// -out -, as text on stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strconv"

	"tilewave/internal/core"
	"tilewave/internal/logging"
	"tilewave/internal/render"
	"tilewave/internal/sims/wavesim"
	"tilewave/pkg/wfc"
)

// exitError carries a process exit code.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

type options struct {
	tileset   string
	file      string
	width     int
	height    int
	seed      int64
	mode      string
	radius    int
	cube      bool
	scale     int
	out       string
	logLevel  string
	logFormat string
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.msg)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parse(args []string, output io.Writer) (*options, error) {
	fs := flag.NewFlagSet("wfc-gen", flag.ContinueOnError)
	fs.SetOutput(output)
	o := &options{}
	def := wavesim.DefaultConfig()
	fs.StringVar(&o.tileset, "tileset", "terrain", fmt.Sprintf("built-in tileset %v", core.Names()))
	fs.StringVar(&o.file, "file", "", "HCL tileset file (overrides -tileset)")
	fs.IntVar(&o.width, "w", def.Width, "map width in cells")
	fs.IntVar(&o.height, "h", def.Height, "map height in cells")
	fs.Int64Var(&o.seed, "seed", def.Seed, "random seed")
	fs.StringVar(&o.mode, "mode", def.Mode.String(), "cell selection: entropy or scan")
	fs.IntVar(&o.radius, "radius", def.Radius, "neighborhood radius")
	fs.BoolVar(&o.cube, "cube", false, "cube neighbor affinities")
	fs.IntVar(&o.scale, "scale", 4, "pixels per cell in PNG output")
	fs.StringVar(&o.out, "out", "map.png", "PNG output path, or - for text on stdout")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, &exitError{code: 0}
		}
		return nil, &exitError{code: 2, msg: err.Error()}
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, &exitError{code: 2, msg: "-w and -h must be positive"}
	}
	if _, err := wfc.ParseMode(o.mode); err != nil {
		return nil, &exitError{code: 2, msg: err.Error()}
	}
	if o.radius < 1 {
		return nil, &exitError{code: 2, msg: "-radius must be at least 1"}
	}
	return o, nil
}

func (o *options) params() map[string]string {
	return map[string]string{
		"w":      strconv.Itoa(o.width),
		"h":      strconv.Itoa(o.height),
		"seed":   strconv.FormatInt(o.seed, 10),
		"mode":   o.mode,
		"radius": strconv.Itoa(o.radius),
		"cube":   strconv.FormatBool(o.cube),
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	o, err := parse(args, stderr)
	if err != nil {
		return err
	}
	log := logging.New(o.logLevel, o.logFormat, stderr)
	slog.SetDefault(log)

	sim, err := wavesim.Open(o.tileset, o.file, o.params())
	if err != nil {
		return err
	}
	runner, ok := sim.(core.Runner)
	if !ok {
		return fmt.Errorf("tileset %s cannot run headless", sim.Name())
	}
	runner.Run()
	if s, ok := sim.(interface{ Stats() wfc.Stats }); ok {
		st := s.Stats()
		log.Info("Map generated.",
			"tileset", sim.Name(),
			"steps", st.Steps,
			"exact", st.Exact(),
			"contradictions", st.Contradictions,
			"empty_candidates", st.EmptyCandidates,
			"finish_picks", st.FinishPicks,
			"finish_fallbacks", st.FinishFallbacks)
	}

	if o.out == "-" {
		tw, ok := sim.(core.TextWriter)
		if !ok {
			return fmt.Errorf("tileset %s has no text output", sim.Name())
		}
		return tw.WriteText(stdout)
	}
	return writePNG(o.out, sim, o.scale, log)
}

func writePNG(path string, sim core.Sim, scale int, log *slog.Logger) error {
	var palette []color.RGBA
	if p, ok := sim.(core.PaletteProvider); ok {
		palette = p.Palette()
	}
	size := sim.Size()
	img := render.Image(sim.Cells(), size.W, size.H, palette, scale)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("Map written.", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
