// Command headless runs the demo without a window: keys come from a script,
// draw calls go to a recorder, and a summary is logged at the end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/milk9111/jumpdemo/config"
	"github.com/milk9111/jumpdemo/input"
	"github.com/milk9111/jumpdemo/physics"
	"github.com/milk9111/jumpdemo/render"
	"github.com/milk9111/jumpdemo/sim"
	"go.uber.org/zap"
)

const defaultScript = "R*90 RJ R*30 .*20 J .*40 L*90 LJ L*60"

func main() {
	configPath := flag.String("config", "", "YAML config file")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	frames := flag.Int("frames", 0, "frames to run; 0 runs the whole script")
	script := flag.String("script", defaultScript, "per-frame keys: L, R, J or '.', with optional *n repeat")
	realtime := flag.Bool("realtime", false, "pace frames at frame.target_hz")
	prodLog := flag.Bool("prod-log", false, "log JSON at info level")
	flag.Parse()

	var (
		logger *zap.Logger
		err    error
	)
	if *prodLog {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "headless: logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}

	kb, err := input.ParseScript(*script)
	if err != nil {
		logger.Fatal("parse script", zap.Error(err))
	}
	if *frames > 0 {
		kb.Limit(*frames)
	}

	world, err := sim.NewWorld(cfg, logger)
	if err != nil {
		logger.Fatal("init", zap.Error(err))
	}

	rec := &render.Recorder{CountOnly: true}
	params := world.Params(cfg)
	params.Events = kb
	params.Keyboard = kb
	params.Renderer = rec
	params.Camera = render.NewCamera(cfg.Window.Width, cfg.Window.Height, cfg.Camera.Scale, physics.Vector{X: cfg.Camera.X, Y: cfg.Camera.Y})
	params.Logger = logger.Named("loop")
	loop := sim.New(params)

	var pacer *sim.Pacer
	if *realtime {
		pacer = sim.NewPacer(cfg.Frame.TargetHz, nil)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := loop.Run(ctx, pacer); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("run", zap.Error(err))
	}

	stats := loop.Stats()
	fields := []zap.Field{
		zap.String("level", world.Scene.Name),
		zap.Int("frames", stats.Frame),
		zap.Int("jumps", stats.Jumps),
		zap.Int("circles", rec.Count(render.CallCircle)),
		zap.Int("rects", rec.Count(render.CallRect)),
	}
	if player, ok := world.Space.Body(world.Scene.Player); ok {
		fields = append(fields,
			zap.Float64("player_x", player.Pose.Position.X),
			zap.Float64("player_y", player.Pose.Position.Y),
		)
	}
	logger.Info("headless run finished", fields...)
}
