package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/config"
	"github.com/san-kum/pixi/internal/gui"
	"github.com/san-kum/pixi/internal/palette"
	"github.com/san-kum/pixi/internal/render"
	"github.com/san-kum/pixi/internal/storage"
	"github.com/san-kum/pixi/internal/tui"
)

var (
	dataDir string

	width        int
	height       int
	bounds       float64
	power        float64
	colourFactor float64
	opacity      float64
	factor       float64
	zoom         int
	delta        float64
	loopLimit    int
	speed        int
	offReal      float64
	offImag      float64
	skipFirst    bool
	escape       bool
	mode         string
	colour       string
	paletteName  string
	workers      int
	output       string

	configFile string
	preset     string
	noUI       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pixi",
		Short: "trajectory-accumulation fractal renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live window when no command given
			cfg := config.DefaultConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			return gui.RunLive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pixi", "data directory")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render the full grid to a PNG",
		RunE:  runRender,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().BoolVar(&noUI, "no-ui", false, "plain output, no progress screen")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "render in a window while the workers fill it in",
		RunE:  runLive,
	}
	addRenderFlags(liveCmd)

	growCmd := &cobra.Command{
		Use:   "grow",
		Short: "watch the render grow one trajectory at a time",
		RunE:  runGrow,
	}
	addRenderFlags(growCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved renders",
		RunE:  listRenders,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in parameter presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("%-10s %dx%d %s zoom=%d delta=%g loop=%d\n",
					name, cfg.Width, cfg.Height, cfg.Mode, cfg.Zoom, cfg.Delta, cfg.LoopLimit)
			}
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats [render_id]",
		Short: "show a saved render's intensity distribution",
		Args:  cobra.ExactArgs(1),
		RunE:  showStats,
	}

	exportCmd := &cobra.Command{
		Use:   "export [render_id]",
		Short: "export render metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := storage.New(dataDir).Load(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(meta)
		},
	}

	rootCmd.AddCommand(renderCmd, liveCmd, growCmd, listCmd, presetsCmd, statsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels")
	cmd.Flags().Float64Var(&bounds, "bounds", config.DefaultBounds, "seed grid half-extent")
	cmd.Flags().Float64Var(&power, "power", config.DefaultPower, "iteration exponent")
	cmd.Flags().Float64Var(&colourFactor, "colour-factor", config.DefaultColourFactor, "hue scale")
	cmd.Flags().Float64Var(&opacity, "opacity", config.DefaultOpacity, "per-point alpha (blend mode)")
	cmd.Flags().Float64Var(&factor, "factor", config.DefaultFactor, "tone-map divisor (density mode)")
	cmd.Flags().IntVar(&zoom, "zoom", config.DefaultZoom, "pixels per unit")
	cmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "seed grid spacing")
	cmd.Flags().IntVar(&loopLimit, "loop", config.DefaultLoopLimit, "iterations per seed")
	cmd.Flags().IntVar(&speed, "speed", config.DefaultSpeed, "iterations per frame (grow mode)")
	cmd.Flags().Float64Var(&offReal, "off-real", 0, "initial z real offset")
	cmd.Flags().Float64Var(&offImag, "off-imaginary", 0, "initial z imaginary offset")
	cmd.Flags().BoolVar(&skipFirst, "skip-first", true, "discard each seed's first iterate")
	cmd.Flags().BoolVar(&escape, "escape", false, "stop trajectories that leave the bounds square")
	cmd.Flags().StringVar(&mode, "mode", "blend", "accumulation mode: blend or density")
	cmd.Flags().StringVar(&colour, "colour", "seed", "hue policy: seed or step")
	cmd.Flags().StringVar(&paletteName, "palette", "mono", "density display gradient")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count, 0 for one per cpu")
	cmd.Flags().StringVar(&output, "output", "out.png", "output file")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers the parameter sources: defaults, then preset, then
// config file, then any flag the user actually set.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("width") {
		cfg.Width = width
	}
	if fs.Changed("height") {
		cfg.Height = height
	}
	if fs.Changed("bounds") {
		cfg.Bounds = bounds
	}
	if fs.Changed("power") {
		cfg.Power = power
	}
	if fs.Changed("colour-factor") {
		cfg.ColourFactor = colourFactor
	}
	if fs.Changed("opacity") {
		cfg.Opacity = opacity
	}
	if fs.Changed("factor") {
		cfg.Factor = factor
	}
	if fs.Changed("zoom") {
		cfg.Zoom = zoom
	}
	if fs.Changed("delta") {
		cfg.Delta = delta
	}
	if fs.Changed("loop") {
		cfg.LoopLimit = loopLimit
	}
	if fs.Changed("speed") {
		cfg.Speed = speed
	}
	if fs.Changed("off-real") {
		cfg.OffReal = offReal
	}
	if fs.Changed("off-imaginary") {
		cfg.OffImag = offImag
	}
	if fs.Changed("skip-first") {
		cfg.SkipFirst = skipFirst
	}
	if fs.Changed("escape") {
		cfg.Escape = escape
	}
	if fs.Changed("mode") {
		cfg.Mode = mode
	}
	if fs.Changed("colour") {
		cfg.Colour = colour
	}
	if fs.Changed("palette") {
		cfg.Palette = paletteName
	}
	if fs.Changed("workers") {
		cfg.Workers = workers
	}
	if fs.Changed("output") {
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	session, disp, err := render.NewBatch(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("rendering %dx%d, %d seeds...\n", cfg.Width, cfg.Height, disp.Total())
	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = disp.Run(ctx)
	}()

	if !noUI {
		if err := tui.Run(session, disp, cancel, "pixi :: render"); err != nil {
			cancel()
			wg.Wait()
			return err
		}
	}
	wg.Wait()

	if errors.Is(runErr, context.Canceled) {
		fmt.Println("canceled")
		return nil
	}
	if runErr != nil {
		return runErr
	}

	elapsed := time.Since(start)

	img := session.Snapshot(nil, cfg.Factor, palette.Lookup(cfg.Palette))
	if err := canvas.WritePNG(cfg.Output, img); err != nil {
		return err
	}

	hist := session.Histogram(32)
	renderID, err := st.Save(cfg, img, elapsed, session.Coverage(), hist)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("render id: %s\n", renderID)
	fmt.Printf("wrote %s\n", cfg.Output)
	fmt.Printf("coverage: %d px\n", session.Coverage())

	if len(hist) > 1 {
		fmt.Println()
		fmt.Println(plotHistogram(hist, "intensity distribution"))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return gui.RunLive(cfg)
}

func runGrow(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	return gui.RunGrow(cfg)
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	renders, err := st.List()
	if err != nil {
		return err
	}

	if len(renders) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tMODE\tZOOM\tELAPSED\tCOVERAGE")

	for _, r := range renders {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%s\t%d\t%.2fs\t%d\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Config.Width,
			r.Config.Height,
			r.Config.Mode,
			r.Config.Zoom,
			r.Elapsed,
			r.Coverage,
		)
	}

	return w.Flush()
}

func showStats(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("render: %s\n", meta.ID)
	fmt.Printf("size: %dx%d  mode: %s  zoom: %d\n",
		meta.Config.Width, meta.Config.Height, meta.Config.Mode, meta.Config.Zoom)
	fmt.Printf("elapsed: %.2fs  coverage: %d px\n\n", meta.Elapsed, meta.Coverage)

	if len(meta.Histogram) < 2 {
		fmt.Println("no histogram recorded")
		return nil
	}
	fmt.Println(plotHistogram(meta.Histogram, "intensity distribution"))
	return nil
}

func plotHistogram(hist []int, caption string) string {
	data := make([]float64, len(hist))
	for i, v := range hist {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(64),
		asciigraph.Caption(caption),
	)
}
