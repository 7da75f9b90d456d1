package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"shopping-list-bot/internal/application"
	"shopping-list-bot/internal/config"
	"shopping-list-bot/internal/domain/ports/repository"
	pg "shopping-list-bot/internal/infra/db/postgres"
	"shopping-list-bot/internal/infra/i18n"
	"shopping-list-bot/internal/infra/logging"
	"shopping-list-bot/internal/infra/memory"
	red "shopping-list-bot/internal/infra/redis"
	"shopping-list-bot/internal/usecase"
)

// app holds everything the subcommands share.
type app struct {
	cfg    *config.Config
	log    *zerolog.Logger
	pool   *pgxpool.Pool
	redis  red.RedisClient
	memory *memory.StateRepo
	tr     *i18n.Translator
	users  usecase.UserUseCase
	facade *application.BotFacade
}

// loadConfig is the fail-fast step: nothing is contacted before it passes.
func loadConfig() (*config.Config, *zerolog.Logger, error) {
	cfg, err := config.Load(cfgPath, devMode)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}
	return cfg, logger, nil
}

func buildApp(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: logger}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	a.pool = pool
	if err := pg.Migrate(ctx, cfg.Database, logger); err != nil {
		a.close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// ---- Redis (optional) ----
	var states repository.StateRepository
	var users repository.UserRepository = pg.NewPostgresUserRepo(pool)
	if cfg.Redis.Enabled() {
		client, err := red.NewClient(ctx, cfg.Redis)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("redis: %w", err)
		}
		a.redis = client
		states = red.NewStateRepo(client, cfg.State.TTL)
		users = pg.NewUserRepoCacheDecorator(users, client, cfg.Redis.TTL, logging.Component(logger, "user_cache"))
	} else {
		logger.Warn().Msg("redis not configured; conversation state in memory, rate limiting disabled")
		a.memory = memory.NewStateRepo(cfg.State.TTL)
		states = a.memory
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(users, cfg.Database.QueryTimeout, cfg.Runtime.Dev, logger)
	listUC := usecase.NewListUseCase(pg.NewPostgresItemRepo(pool), cfg.Database.QueryTimeout, logger)

	tr, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Lang)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("i18n: %w", err)
	}
	a.tr = tr
	a.users = userUC
	a.facade = application.NewBotFacade(userUC, listUC, states, tr, logger)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

const shutdownTimeout = 10 * time.Second
