package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/jumpdemo/config"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, reloaded when it changes")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "draw physics outlines and the stats overlay")
	prodLog := flag.Bool("prod-log", false, "log JSON at info level")
	flag.Parse()

	logger, err := newLogger(*prodLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jumpdemo: logger: %v\n", err)
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

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Frame.TargetHz)

	game, err := NewGame(cfg, *configPath, *debug, logger)
	if err != nil {
		logger.Fatal("init", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", zap.Error(err))
	}
}

func newLogger(prod bool) (*zap.Logger, error) {
	if prod {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
