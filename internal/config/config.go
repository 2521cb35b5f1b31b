// Package config holds the flat render parameter set, its defaults, yaml
// loading, and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultBounds       = 0.6
	DefaultPower        = 2.0
	DefaultColourFactor = 0.7
	DefaultOpacity      = 20.0 / 255.0
	DefaultFactor       = 50.0
	DefaultZoom         = 350
	DefaultDelta        = 0.05
	DefaultLoopLimit    = 200
	DefaultSpeed        = 2000
)

type Config struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Bounds float64 `yaml:"bounds"`
	Power  float64 `yaml:"power"`

	// ColourFactor scales the seed-derived hue; Opacity is the alpha of each
	// accumulated point in blend mode; Factor is the display tone-map
	// divisor in density mode.
	ColourFactor float64 `yaml:"colour_factor"`
	Opacity      float64 `yaml:"opacity"`
	Factor       float64 `yaml:"factor"`

	Zoom      int     `yaml:"zoom"`
	Delta     float64 `yaml:"delta"`
	LoopLimit int     `yaml:"loop_limit"`

	// Speed is the number of iterations the incremental renderer advances
	// per presentation frame.
	Speed int `yaml:"speed"`

	// Initial z offset for every trajectory.
	OffReal float64 `yaml:"off_real"`
	OffImag float64 `yaml:"off_imaginary"`

	// SkipFirst discards the first iterate of each seed; Escape stops a
	// trajectory once both components of z leave the bounds square.
	SkipFirst bool `yaml:"skip_first"`
	Escape    bool `yaml:"escape"`

	Mode    string `yaml:"mode"`    // blend | density
	Colour  string `yaml:"colour"`  // seed | step
	Palette string `yaml:"palette"` // density display gradient

	// Workers caps the batch worker pool; 0 means one per CPU.
	Workers int `yaml:"workers"`

	Output string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Bounds:       DefaultBounds,
		Power:        DefaultPower,
		ColourFactor: DefaultColourFactor,
		Opacity:      DefaultOpacity,
		Factor:       DefaultFactor,
		Zoom:         DefaultZoom,
		Delta:        DefaultDelta,
		LoopLimit:    DefaultLoopLimit,
		Speed:        DefaultSpeed,
		SkipFirst:    true,
		Mode:         "blend",
		Colour:       "seed",
		Palette:      "mono",
		Output:       "out.png",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects malformed parameters before any canvas is allocated;
// silently wrong geometry is worse than a refusal to start.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Bounds <= 0 {
		return fmt.Errorf("bounds must be positive, got %f", c.Bounds)
	}
	if c.Zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %d", c.Zoom)
	}
	if c.Delta <= 0 {
		return fmt.Errorf("delta must be positive, got %f", c.Delta)
	}
	if c.LoopLimit <= 0 {
		return fmt.Errorf("loop_limit must be positive, got %d", c.LoopLimit)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %d", c.Speed)
	}
	if c.Opacity < 0 || c.Opacity > 1 {
		return fmt.Errorf("opacity must be in [0,1], got %f", c.Opacity)
	}
	if c.Factor <= 0 {
		return fmt.Errorf("factor must be positive, got %f", c.Factor)
	}
	if c.Mode != "blend" && c.Mode != "density" {
		return fmt.Errorf("mode must be blend or density, got %q", c.Mode)
	}
	if c.Colour != "seed" && c.Colour != "step" {
		return fmt.Errorf("colour must be seed or step, got %q", c.Colour)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}

	// The seed grid is materialized up front, so a fine delta over a wide
	// square costs O(n^2) memory; refuse grids that cannot fit anyway.
	side := 2 * c.Bounds / c.Delta
	if side > 1<<15 {
		return fmt.Errorf("grid of %.0fx%.0f seeds is too fine; increase delta or shrink bounds", side, side)
	}
	return nil
}
