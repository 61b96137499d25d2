package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/cemetery/config"
	"github.com/milk9111/cemetery/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (debug logs, overlay, prefab hot reload)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *levelName != "" {
		cfg.Level = *levelName
	}
	if *debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
		cfg.WatchPrefabs = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	base, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Development: cfg.Debug})
	if err != nil {
		log.Fatal(err)
	}
	l, _ := logger.WithSession(base)
	l.Info("starting", zap.String("level", cfg.Level), zap.Bool("debug", cfg.Debug))

	if err := run(cfg, l, *baseMonitor); err != nil {
		l.Error("game exited", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
	_ = l.Sync()
}

func run(cfg *config.Config, l *zap.Logger, baseMonitor bool) error {
	if baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Project Cemetery")

	game, err := NewGame(cfg, l)
	if err != nil {
		return err
	}
	defer game.Close()

	// Mouse look needs the pointer locked to the window.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	return ebiten.RunGame(game)
}
