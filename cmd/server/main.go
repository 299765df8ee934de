package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dicedeck-server/internal/agent"
	"dicedeck-server/internal/config"
	"dicedeck-server/internal/engine"
	"dicedeck-server/internal/infrastructure/storage"
	"dicedeck-server/internal/network"
	"dicedeck-server/internal/server"
	"dicedeck-server/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		configPath string
		seed       int64
		replayPath string
		autoplay   bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML config (defaults are used if empty)")
	// 0 - взять seed из конфига, а если и там 0, то случайный
	flag.Int64Var(&seed, "seed", 0, "Match seed (0 for config/random)")
	flag.StringVar(&replayPath, "replay", "", "Path to .ddrp replay file to simulate")
	flag.BoolVar(&autoplay, "bot", false, "Let a headless agent play the match")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	logger.Init(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	logger.Log.Info("Starting dice deck server...")

	replays := storage.NewReplayService(cfg.Server.ReplayDir)

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		runReplay(cfg, replays, replayPath)
		return
	}

	switch {
	case seed != 0:
		logger.Log.Infof("Using explicit seed: %d", seed)
	case cfg.Seed != 0:
		seed = cfg.Seed
		logger.Log.Infof("Using config seed: %d", seed)
	default:
		seed = time.Now().UnixNano()
		logger.Log.Infof("Using random seed: %d", seed)
	}

	gameService, err := engine.NewService(cfg, seed, network.NewBroadcaster())
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build match")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(gameService, cfg.Server.Port)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return gameService.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })
	if autoplay {
		bot := agent.NewBot(gameService, seed)
		g.Go(func() error { return bot.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Error("Server stopped with error")
	}
	logger.Log.Info("Shutting down...")

	rec := gameService.Recording()
	if len(rec.Actions) > 0 {
		path, err := replays.Save(rec)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to save replay")
		} else {
			logger.Log.WithField("path", path).Info("Replay saved.")
		}
	}

	logger.Log.Info("Done.")
}

// runReplay проигрывает запись и печатает итоговый снимок в stdout
func runReplay(cfg config.Config, replays *storage.ReplayService, path string) {
	logger.Log.Info("Mode: Replay Simulation")

	session, err := replays.Load(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay")
	}

	gameService, err := engine.Replay(cfg, session)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to replay session")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(gameService.State()); err != nil {
		logger.Log.WithError(err).Fatal("Failed to print final state")
	}
}
