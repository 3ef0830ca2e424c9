package wavesim

import (
	"strconv"

	"tilewave/pkg/wfc"
)

// DefaultConfig returns the standard generator configuration for windowed
// and headless runs.
func DefaultConfig() wfc.Config {
	cfg := wfc.DefaultConfig()
	cfg.Width = 96
	cfg.Height = 64
	return cfg
}

// FromMap populates a generator config from a string map (flag-style
// key/value pairs). Unknown keys and unparsable values keep their defaults.
func FromMap(cfg map[string]string) wfc.Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := wfc.ParseMode(v); err == nil {
			c.Mode = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["cube"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.CubeAffinity = parsed
		}
	}
	return c
}
