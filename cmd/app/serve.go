package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"shopping-list-bot/internal/config"
	tele "shopping-list-bot/internal/infra/adapters/telegram"
	httpapi "shopping-list-bot/internal/infra/http"
	"shopping-list-bot/internal/infra/metrics"
	red "shopping-list-bot/internal/infra/redis"
	"shopping-list-bot/internal/infra/sched"
	"shopping-list-bot/internal/infra/worker"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot and the HTTP server until interrupted",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit, cfg.Bot.Mode)

	// ---- Workers ----
	pool := worker.NewPool(cfg.Bot.Workers, logger)
	pool.Start(ctx)
	defer pool.Stop()

	var limiter tele.Limiter
	if a.redis != nil {
		limiter = red.NewRateLimiter(a.redis)
	}

	// ---- Telegram ----
	bot, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, a.facade, pool, limiter, cfg.RateLimit.Limit(), a.tr, logger)
	if err != nil {
		return err
	}

	opts := []httpapi.Option{httpapi.WithStats(a.users, cfg.HTTP.AdminAPIKey)}
	if cfg.Bot.Mode == config.ModeWebhook {
		if err := bot.SetWebhook(ctx); err != nil {
			return err
		}
		opts = append(opts, httpapi.WithWebhook(cfg.Bot.WebhookPath, bot.WebhookHandler()))
	} else if err := bot.DeleteWebhook(ctx); err != nil {
		logger.Warn().Err(err).Msg("could not clear webhook before polling")
	}
	srv := httpapi.NewServer(cfg.HTTP.Port, logger, opts...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if cfg.Bot.Mode == config.ModePolling {
		g.Go(func() error { return bot.StartPolling(gctx) })
	}

	// ---- Periodic jobs ----
	g.Go(func() error {
		return sched.NewWorker("db_pool_stats", 30*time.Second, sched.DBPoolStatsJob(a.pool), logger).Run(gctx)
	})
	if a.memory != nil {
		g.Go(func() error {
			return sched.NewWorker("state_sweeper", time.Minute, sched.StateSweepJob(a.memory), logger).Run(gctx)
		})
	}

	logger.Info().
		Str("mode", cfg.Bot.Mode).
		Int("workers", pool.Size()).
		Int("http_port", cfg.HTTP.Port).
		Msg("bot started")

	err = g.Wait()
	logger.Info().Msg("shutdown complete")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
