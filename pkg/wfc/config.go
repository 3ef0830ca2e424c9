package wfc

import (
	"fmt"
	"log/slog"
	"strings"
)

// Mode selects how the generator picks the next cell to resolve.
type Mode uint8

const (
	// ModeGlobalEntropy propagates to a fixed point and always resolves the
	// cell with the fewest remaining candidates next.
	ModeGlobalEntropy Mode = iota
	// ModeScanOrder resolves cells strictly in row-major order, narrowing each
	// one only by its already-resolved neighbors. Cheaper per step, but the
	// output leans in the scan direction.
	ModeScanOrder
)

func (m Mode) String() string {
	switch m {
	case ModeGlobalEntropy:
		return "entropy"
	case ModeScanOrder:
		return "scan"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "entropy", "global", "global-entropy":
		return ModeGlobalEntropy, nil
	case "scan", "scan-order":
		return ModeScanOrder, nil
	}
	return 0, fmt.Errorf("wfc: unknown mode %q", s)
}

// Config controls generator dimensions, randomness and resolution strategy.
type Config struct {
	Width  int
	Height int

	// Seed drives every random choice; equal seeds give equal output.
	Seed int64

	Mode Mode

	// Radius is the neighborhood reach used by Step: 1 is the 8-connected
	// ring, 2 the 5x5 block. Zero means 1.
	Radius int

	// CubeAffinity cubes each resolved neighbor's weight during collapse,
	// sharply favoring strong pairings.
	CubeAffinity bool

	// Logger receives debug events for recovered contradictions. Nil uses
	// slog.Default at construction.
	Logger *slog.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  40,
		Height: 40,
		Seed:   1337,
		Mode:   ModeGlobalEntropy,
		Radius: 1,
	}
}

func (c Config) validate() (Config, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return c, fmt.Errorf("%dx%d: %w", c.Width, c.Height, ErrInvalidSize)
	}
	if c.Radius == 0 {
		c.Radius = 1
	}
	if c.Radius < 0 {
		return c, fmt.Errorf("radius %d: %w", c.Radius, ErrInvalidRadius)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c, nil
}
