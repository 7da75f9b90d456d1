package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"shopping-list-bot/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseLogger routes goose output through zerolog.
type gooseLogger struct {
	log *zerolog.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Info().Msgf(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatal().Msgf(format, v...) }

// Migrate applies the embedded schema migrations over a short-lived
// database/sql handle.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, logger *zerolog.Logger) error {
	cc, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}
	if cfg.Password != "" {
		cc.Password = cfg.Password
	}
	db := stdlib.OpenDB(*cc)
	defer db.Close()

	migLog := logger.With().Str("component", "migrate").Logger()
	goose.SetLogger(gooseLogger{log: &migLog})
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
