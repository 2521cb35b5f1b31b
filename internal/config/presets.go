package config

import "sort"

// Presets are named starting points; preset returns a fresh copy so callers
// can override fields without touching the table.
var presets = map[string]Config{
	// The live density render with its original defaults.
	"classic": {
		Width: 1280, Height: 720, Bounds: 0.6, Power: 2.0,
		Factor: 50.0, Zoom: 350, Delta: 0.05, LoopLimit: 200, Speed: 2000,
		SkipFirst: true, Mode: "density", Colour: "seed", Palette: "mono",
		Opacity: DefaultOpacity, ColourFactor: DefaultColourFactor,
		Output: "out.png",
	},
	// Long-exposure blend render; slow but dense.
	"nebula": {
		Width: 1440, Height: 1440, Bounds: 0.9, Power: 2.0,
		ColourFactor: 0.7, Opacity: 20.0 / 255.0, Factor: 50.0,
		Zoom: 700, Delta: 0.005, LoopLimit: 200000, Speed: 20000,
		SkipFirst: true, Mode: "blend", Colour: "seed", Palette: "mono",
		Output: "out.png",
	},
	// Quick preview grid, coarse but fast.
	"draft": {
		Width: 640, Height: 480, Bounds: 0.6, Power: 2.0,
		ColourFactor: 0.7, Opacity: 0.1, Factor: 20.0,
		Zoom: 180, Delta: 0.1, LoopLimit: 100, Speed: 500,
		SkipFirst: true, Mode: "density", Colour: "seed", Palette: "mono",
		Output: "out.png",
	},
	// Dense density field with a warm gradient and escape checking.
	"ember": {
		Width: 1280, Height: 1280, Bounds: 2.0, Power: 2.0,
		ColourFactor: 0.7, Opacity: DefaultOpacity, Factor: 120.0,
		Zoom: 300, Delta: 0.01, LoopLimit: 2000, Speed: 10000,
		SkipFirst: true, Escape: true, Mode: "density", Colour: "seed",
		Palette: "ember", Output: "out.png",
	},
	// Cubic recurrence variant.
	"cubic": {
		Width: 1280, Height: 720, Bounds: 1.1, Power: 3.0,
		ColourFactor: 0.5, Opacity: 0.1, Factor: 50.0,
		Zoom: 300, Delta: 0.02, LoopLimit: 500, Speed: 5000,
		SkipFirst: true, Mode: "blend", Colour: "step", Palette: "mono",
		Output: "out.png",
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	return &cfg
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
