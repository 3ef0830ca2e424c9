//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"tilewave/internal/app"
	"tilewave/internal/logging"
	"tilewave/internal/sims/wavesim"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	log := logging.New(*logLevel, *logFormat, os.Stderr)
	slog.SetDefault(log)

	sim, err := wavesim.Open(cfg.Tileset, cfg.File, cfg.Params())
	if err != nil {
		log.Error("Failed to open tileset.", "error", err)
		os.Exit(1)
	}

	game := app.New(sim, cfg)
	size := sim.Size()
	log.Info("Starting viewer.", "tileset", sim.Name(), "w", size.W, "h", size.H, "seed", cfg.Seed)

	ebiten.SetWindowTitle("tilewave - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.PixelScale()+cfg.PanelWidth(), size.H*cfg.PixelScale())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error("Viewer stopped.", "error", err)
		os.Exit(1)
	}
}
