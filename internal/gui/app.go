// Package gui presents a render in a native window. Batch renders fill in
// live while the dispatcher works; incremental renders grow the image a
// slice of iterations per frame.
package gui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/pixi/internal/canvas"
	"github.com/san-kum/pixi/internal/config"
	"github.com/san-kum/pixi/internal/palette"
	"github.com/san-kum/pixi/internal/render"
)

// Converting the full canvas to pixels every frame starves the workers, so
// the displayed texture only refreshes every redrawInterval frames unless an
// input forces it.
const redrawInterval = 30

type App struct {
	cfg     *config.Config
	session *render.Session
	grad    palette.Gradient
	factor  float64

	view   *image.RGBA
	pixels []color.RGBA
	tex    rl.Texture2D
	frame  int

	started time.Time
	showHUD bool

	progress func() (done, total int64)
	reset    func()
}

func initWindow(cfg *config.Config, title string) {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), title)
	rl.SetTargetFPS(60)
}

func newApp(cfg *config.Config, session *render.Session) *App {
	return &App{
		cfg:     cfg,
		session: session,
		grad:    palette.Lookup(cfg.Palette),
		factor:  cfg.Factor,
		pixels:  make([]color.RGBA, cfg.Width*cfg.Height),
		started: time.Now(),
		showHUD: true,
	}
}

// RunLive renders the full grid on the worker pool while the window shows
// the canvas filling in. Left click restarts the render, right click saves
// the current view, the mouse wheel adjusts the density tone factor, Esc
// closes the window.
func RunLive(cfg *config.Config) error {
	session, disp, err := render.NewBatch(cfg)
	if err != nil {
		return err
	}

	initWindow(cfg, "pixi :: live")
	defer rl.CloseWindow()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	start := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			disp.Run(ctx)
		}()
	}
	start()

	a := newApp(cfg, session)
	a.progress = func() (int64, int64) { return disp.Done(), int64(disp.Total()) }
	a.reset = func() {
		cancel()
		wg.Wait()
		ctx, cancel = context.WithCancel(context.Background())
		session.Reset()
		disp.Reset()
		start()
	}
	a.runLoop()

	cancel()
	wg.Wait()
	return nil
}

// RunGrow renders incrementally: one goroutine advances the walker Speed
// iterations per tick while the window shows the image growing. Left click
// resets the walk to the first seed.
func RunGrow(cfg *config.Config) error {
	session, err := render.NewGrow(cfg)
	if err != nil {
		return err
	}

	initWindow(cfg, "pixi :: grow")
	defer rl.CloseWindow()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		tick := time.NewTicker(time.Second / 60)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				session.Advance(cfg.Speed)
			}
		}
	}()

	a := newApp(cfg, session)
	a.progress = func() (int64, int64) {
		done, total := session.Progress()
		return int64(done), int64(total)
	}
	a.reset = func() { session.Reset() }
	a.runLoop()

	cancel()
	wg.Wait()
	return nil
}

func (a *App) runLoop() {
	a.view = a.session.Snapshot(nil, a.factor, a.grad)
	if a.showHUD {
		a.stampHUD()
	}
	img := rl.NewImageFromImage(a.view)
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(a.tex)

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}
}

func (a *App) update() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if wheel < 0 {
			a.factor *= 2
		} else {
			a.factor /= 2
		}
		a.redraw()
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.reset()
		a.started = time.Now()
		a.redraw()
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.save()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.showHUD = !a.showHUD
		a.redraw()
	}

	a.frame++
	if a.frame%redrawInterval == 0 {
		a.redraw()
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexture(a.tex, 0, 0, rl.White)
	rl.EndDrawing()
}

func (a *App) redraw() {
	a.view = a.session.Snapshot(a.view, a.factor, a.grad)
	if a.showHUD {
		a.stampHUD()
	}
	pix := a.view.Pix
	for i := range a.pixels {
		a.pixels[i] = color.RGBA{pix[i*4], pix[i*4+1], pix[i*4+2], pix[i*4+3]}
	}
	rl.UpdateTexture(a.tex, a.pixels)
}

// stampHUD writes progress and the active parameters directly into the view
// image, so the overlay survives in saved output the same way it is shown.
func (a *App) stampHUD() {
	done, total := a.progress()
	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	lines := []string{
		fmt.Sprintf("%5.1f%%  %s  factor %g", pct, time.Since(a.started).Truncate(time.Second), a.factor),
	}
	if dump, err := yaml.Marshal(a.cfg); err == nil {
		lines = append(lines, strings.Split(strings.TrimRight(string(dump), "\n"), "\n")...)
	}

	y := 8
	for _, line := range lines {
		canvas.DrawLabel(a.view, 8, y, line)
		y += canvas.LabelHeight + 2
	}
}

func (a *App) save() {
	if err := canvas.WritePNG(a.cfg.Output, a.view); err != nil {
		fmt.Printf("save failed: %v\n", err)
		return
	}
	fmt.Printf("saved %s\n", a.cfg.Output)
}
