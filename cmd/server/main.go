package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cavesight/internal/agent"
	"cavesight/internal/engine"
	"cavesight/internal/server"
	"cavesight/internal/version"
	"cavesight/pkg/dungeon"
	"cavesight/pkg/logger"

	"github.com/sirupsen/logrus"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg := engine.NewConfig()
	var (
		seed     uint64
		gen      string
		turns    int
		withBot  bool
		noCheats bool
	)
	flag.Uint64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.StringVar(&gen, "gen", cfg.Layout.String(), "Level layout: rooms or cave")
	flag.IntVar(&cfg.Depth, "depth", cfg.Depth, "Depth of the first level (0 is the town)")
	flag.IntVar(&cfg.LightRadius, "light", cfg.LightRadius, "Observer light radius")
	flag.BoolVar(&cfg.Unlight, "unlight", false, "Observer sees adjacent cells without light")
	flag.BoolVar(&cfg.Night, "night", false, "Start the town at night (depth 0)")
	flag.BoolVar(&noCheats, "no-cheats", false, "Disable TELEPORT, WIZ_LIGHT and other debug commands")
	flag.DurationVar(&cfg.TurnDelay, "delay", cfg.TurnDelay, "Agent delay between turns")
	flag.BoolVar(&withBot, "bot", false, "Let the exploring agent drive the session")
	flag.IntVar(&turns, "turns", 0, "Headless mode: run the agent for N turns and exit")
	flag.Parse()

	logger.Log.Info("Starting Cavesight...")
	logger.Log.Info(version.String())

	layout, err := dungeon.ParseLayout(gen)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad -gen value")
	}
	cfg.Layout = layout
	cfg.Cheats = !noCheats
	if seed != 0 {
		cfg.Seed = seed
		logger.Log.Infof("🎲 Using explicit Master Seed: %d", seed)
	} else {
		logger.Log.Infof("🎲 Using random Master Seed: %d", cfg.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Инициализация ядра с конфигом
	service := engine.NewService(cfg)
	defer service.Close()
	go service.Run(ctx)

	if turns > 0 {
		runHeadless(ctx, cfg, service, turns)
		return
	}

	if withBot {
		bot := agent.NewBot("agent", service, cfg.TurnDelay)
		go bot.Run(ctx, 0)
	}

	// 3. Запуск сервера
	port := os.Getenv("CS_PORT")
	if port == "" {
		port = "8080"
	}
	if err := server.New(service, port).Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server error")
	}
	logger.Log.Info("Done.")
}

// runHeadless гоняет агента без сервера, затем проигрывает журнал сессии
// заново и сверяет итог.
func runHeadless(ctx context.Context, cfg engine.Config, service *engine.Service, turns int) {
	logger.Log.WithField("turns", turns).Info("🤖 Mode: headless agent")

	bot := agent.NewBot("agent", service, 0)
	sent := bot.Run(ctx, turns)

	// Даем очереди опустеть
	for len(service.CommandChan) > 0 && ctx.Err() == nil {
		time.Sleep(10 * time.Millisecond)
	}

	sum := service.Session.Summary()
	last := service.Session.Last()
	logger.Log.WithFields(logrus.Fields{
		"commands": sent,
		"tick":     last.Tick,
		"depth":    sum.Depth,
		"marked":   sum.Marked,
		"seen":     sum.Seen,
	}).Info("Agent finished")

	replayed, err := engine.Playback(cfg, service.Session.Replay())
	if err != nil {
		logger.Log.WithError(err).Error("Replay failed")
		return
	}
	defer replayed.Close()
	if replayed.Observer().Pos != service.Session.Observer().Pos || replayed.Last() != service.Session.Last() {
		logger.Log.WithFields(logrus.Fields{
			"observer": service.Session.Observer().Pos,
			"replayed": replayed.Observer().Pos,
		}).Error("Replay diverged")
		return
	}
	logger.Log.Info("Replay matches the session")
}
