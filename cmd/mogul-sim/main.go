package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mogul/internal/config"
	"mogul/internal/game"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadSimFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		logger.Error("load content failed", "err", err)
		os.Exit(1)
	}

	var opts []game.Option
	if cfg.Seed != 0 {
		opts = append(opts, game.WithSeed(cfg.Seed))
	}
	session, err := game.NewSession(content, opts...)
	if err != nil {
		logger.Error("session init failed", "err", err)
		os.Exit(1)
	}
	subscribe(session, logger)

	pilot := newAutopilot(session, content)

	if cfg.RunOnce {
		session.Advance(1)
		pilot.act()
		logger.Info("sim run-once completed", "tick", session.Dashboard().Tick)
		return
	}

	ticker := time.NewTicker(cfg.TickEvery)
	defer ticker.Stop()

	logger.Info("sim started", "tick_every", cfg.TickEvery.String(), "max_ticks", cfg.MaxTicks)
	for {
		select {
		case <-ctx.Done():
			logger.Info("sim shutdown", "tick", session.Dashboard().Tick)
			return
		case <-ticker.C:
			tick := session.Advance(1)
			pilot.act()
			if session.Outcome() != game.OutcomeOpen {
				report(session, logger)
				return
			}
			if cfg.MaxTicks > 0 && tick >= int64(cfg.MaxTicks) {
				logger.Info("tick budget exhausted", "tick", tick)
				return
			}
		}
	}
}

func subscribe(session *game.Session, logger *slog.Logger) {
	bus := session.Bus()
	bus.OnIncome(func(e game.IncomeEvent) {
		if e.Source != game.SourceRestaurant && e.Source != game.SourceLotBonus {
			logger.Info("income", "source", e.Source, "amount", game.MicrosToCoins(e.AmountMicros))
		}
	})
	bus.OnOwnership(func(e game.OwnershipChange) {
		logger.Info("lot settled", "lot", e.LotID, "owner", e.Owner)
	})
	bus.OnRivalWarning(func(e game.RivalWarning) {
		logger.Warn("rival purchase incoming", "ticks_remaining", e.TicksRemaining)
	})
	bus.OnGameOver(func(e game.GameOverEvent) {
		logger.Info("game over", "outcome", e.Outcome, "tick", e.Tick)
	})
}

func report(session *game.Session, logger *slog.Logger) {
	summary, err := session.Summary()
	if err != nil {
		logger.Error("summary unavailable", "err", err)
		return
	}
	logger.Info("final summary",
		"outcome", summary.Outcome,
		"final_tick", summary.FinalTick,
		"final_balance", game.MicrosToCoins(summary.FinalBalanceMicros),
		"peak_net_worth", game.MicrosToCoins(summary.PeakNetWorthMicros),
		"realized_gain", game.MicrosToCoins(summary.RealizedGainMicros),
		"unrealized_gain", game.MicrosToCoins(summary.UnrealizedGainMicros),
		"sales", len(summary.SellHistory),
	)
}
