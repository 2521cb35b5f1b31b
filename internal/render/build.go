package render

import (
	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/config"
	"github.com/san-kum/pixi/internal/fractal"
)

// NewBatch assembles a batch render from a validated config: the canvas, the
// session guarding it, and the dispatcher over the full seed grid.
func NewBatch(cfg *config.Config) (*Session, *Dispatcher, error) {
	cv, orbit, colorize, err := build(cfg)
	if err != nil {
		return nil, nil, err
	}
	session := NewSession(cv)
	seeds := fractal.Grid(cfg.Bounds, cfg.Delta)
	return session, NewDispatcher(session, orbit, colorize, seeds, cfg.Workers), nil
}

// NewGrow assembles an incremental render session whose walker the
// presentation loop advances Speed iterations per tick.
func NewGrow(cfg *config.Config) (*Session, error) {
	cv, orbit, colorize, err := build(cfg)
	if err != nil {
		return nil, err
	}
	seeds := fractal.Grid(cfg.Bounds, cfg.Delta)
	walker := NewWalker(seeds, orbit, colorize, cv.Mode() == canvas.ModeDensity)
	return NewGrowSession(cv, walker), nil
}

func build(cfg *config.Config) (*canvas.Canvas, fractal.Orbit, Colorizer, error) {
	mode, err := canvas.ParseMode(cfg.Mode)
	if err != nil {
		return nil, fractal.Orbit{}, nil, err
	}

	cv := canvas.New(cfg.Width, cfg.Height, float64(cfg.Zoom), mode)

	orbit := fractal.Orbit{
		Power:     cfg.Power,
		Limit:     cfg.LoopLimit,
		Offset:    complex(cfg.OffReal, cfg.OffImag),
		SkipFirst: cfg.SkipFirst,
		Escape:    cfg.Escape,
		Bounds:    cfg.Bounds,
	}

	var colorize Colorizer
	if cfg.Colour == "step" {
		colorize = StepColorizer(cfg.Bounds, cfg.ColourFactor, cfg.Opacity)
	} else {
		colorize = SeedColorizer(cfg.Bounds, cfg.ColourFactor, cfg.Opacity)
	}

	return cv, orbit, colorize, nil
}
