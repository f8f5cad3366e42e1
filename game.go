package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpdemo/config"
	"github.com/milk9111/jumpdemo/input/ebitenin"
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/render"
	"github.com/milk9111/jumpdemo/render/canvas"
	"github.com/milk9111/jumpdemo/sim"
	"go.uber.org/zap"
)

// Game adapts the simulation loop to ebiten. Each Update runs one full
// frame into the canvas; Draw only shows the last presented image.
type Game struct {
	loop    *sim.Loop
	canvas  *canvas.Canvas
	events  *ebitenin.Events
	watcher *config.Watcher
	debug   bool
}

func NewGame(cfg config.Config, configPath string, debug bool, logger *zap.Logger) (*Game, error) {
	world, err := sim.NewWorld(cfg, logger)
	if err != nil {
		return nil, err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	cv, err := canvas.New(w, h)
	if err != nil {
		return nil, err
	}
	g := &Game{
		canvas: cv,
		events: ebitenin.NewEvents(w, h),
		debug:  debug,
	}

	params := world.Params(cfg)
	params.Events = g.events
	params.Keyboard = ebitenin.Keyboard{}
	params.Renderer = g.canvas
	params.Camera = render.NewCamera(w, h, cfg.Camera.Scale, physics.Vector{X: cfg.Camera.X, Y: cfg.Camera.Y})
	params.Logger = logger.Named("loop")

	if configPath != "" {
		g.watcher, err = config.NewWatcher(configPath, logger.Named("config"))
		if err != nil {
			return nil, fmt.Errorf("game: watch %s: %w", configPath, err)
		}
		params.Tunables = g.watcher.Updates()
	}
	if debug {
		params.Overlay = func(cam render.Camera) {
			world.Space.DebugDraw(render.NewPhysicsDrawer(g.canvas, cam))
		}
	}

	g.loop = sim.New(params)
	return g, nil
}

func (g *Game) Update() error {
	if !g.loop.Frame() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if front := g.canvas.Front(); front != nil {
		screen.DrawImage(front, nil)
	}
	if g.debug {
		stats := g.loop.Stats()
		stats.FPS = ebiten.ActualFPS()
		canvas.DrawHUD(screen, stats)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.events.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
