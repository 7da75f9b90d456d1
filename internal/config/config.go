// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ModePolling = "polling"
	ModeWebhook = "webhook"

	DefaultRateLimitPerMinute = 20
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token          string `yaml:"token" validate:"required"`
	Mode           string `yaml:"mode" validate:"oneof=polling webhook"`
	WebhookBaseURL string `yaml:"webhook_base_url" validate:"omitempty,url"`
	WebhookPath    string `yaml:"webhook_path" validate:"startswith=/"`
	// WebhookSecret is echoed by Telegram in X-Telegram-Bot-Api-Secret-Token.
	WebhookSecret string `yaml:"webhook_secret" validate:"omitempty,max=256,tgsecret"`
	Workers        int    `yaml:"workers" validate:"min=1"`
	Lang           string `yaml:"lang"`
}

type HTTPConfig struct {
	Port        int    `yaml:"port" validate:"min=1,max=65535"`
	AdminAPIKey string `yaml:"admin_api_key"` // empty disables /api/v1/stats
}

type LogConfig struct {
	Level    string `yaml:"level" validate:"loglevel"` // trace|debug|info|warn|error
	Format   string `yaml:"format" validate:"oneof=json console"`
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL          string        `yaml:"url" validate:"required"`
	Password     string        `yaml:"password"`
	MaxConns     int32         `yaml:"max_conns" validate:"min=1"`
	QueryTimeout time.Duration `yaml:"query_timeout" validate:"gt=0"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db" validate:"min=0"`
	TTL      time.Duration `yaml:"ttl"`
}

// Enabled reports whether a Redis endpoint is configured. Without one the bot
// keeps conversation state in memory and runs without rate limiting.
func (r RedisConfig) Enabled() bool { return r.URL != "" }

type StateConfig struct {
	TTL time.Duration `yaml:"ttl" validate:"gt=0"`
}

// RateLimitConfig.PerMinute is nil when unset; an explicit 0 disables limiting.
type RateLimitConfig struct {
	PerMinute *int `yaml:"per_minute" validate:"omitempty,min=0"`
}

// Limit returns the per-minute message budget, 0 meaning unlimited.
func (r RateLimitConfig) Limit() int {
	if r.PerMinute == nil {
		return DefaultRateLimitPerMinute
	}
	return *r.PerMinute
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	State     StateConfig     `yaml:"state"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Runtime RuntimeConfig `yaml:"-"`
}

// envValues mirrors the deployment environment. Only non-empty values
// override what the YAML file set.
type envValues struct {
	BotToken       string `env:"BOT_TOKEN"`
	BotMode        string `env:"BOT_MODE"`
	WebhookBaseURL string `env:"WEBHOOK_BASE_URL"`
	WebhookSecret  string `env:"WEBHOOK_SECRET"`
	Port           int    `env:"PORT"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabasePass   string `env:"DATABASE_PASSWORD"`
	RedisURL       string `env:"REDIS_URL"`
	LogLevel       string `env:"LOG_LEVEL"`
	AdminAPIKey    string `env:"ADMIN_API_KEY"`
}

// Load reads the YAML file at path (a missing file is fine), applies .env and
// process environment overrides, fills defaults and validates the result.
func Load(path string, dev bool) (*Config, error) {
	var cfg Config

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	// .env is optional; the process environment wins over it.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	applyDefaults(&cfg)
	cfg.Runtime.Dev = dev

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var ev envValues
	if err := env.Parse(&ev); err != nil {
		return err
	}
	if ev.BotToken != "" {
		cfg.Bot.Token = ev.BotToken
	}
	if ev.BotMode != "" {
		cfg.Bot.Mode = ev.BotMode
	}
	if ev.WebhookBaseURL != "" {
		cfg.Bot.WebhookBaseURL = ev.WebhookBaseURL
	}
	if ev.WebhookSecret != "" {
		cfg.Bot.WebhookSecret = ev.WebhookSecret
	}
	if ev.Port != 0 {
		cfg.HTTP.Port = ev.Port
	}
	if ev.DatabaseURL != "" {
		cfg.Database.URL = ev.DatabaseURL
	}
	if ev.DatabasePass != "" {
		cfg.Database.Password = ev.DatabasePass
	}
	if ev.RedisURL != "" {
		cfg.Redis.URL = ev.RedisURL
	}
	if ev.LogLevel != "" {
		cfg.Log.Level = ev.LogLevel
	}
	if ev.AdminAPIKey != "" {
		cfg.HTTP.AdminAPIKey = ev.AdminAPIKey
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = ModePolling
	}
	cfg.Bot.Mode = strings.ToLower(cfg.Bot.Mode)
	if cfg.Bot.WebhookPath == "" {
		cfg.Bot.WebhookPath = "/telegram/webhook"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.Lang == "" {
		cfg.Bot.Lang = "en"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8081
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.QueryTimeout <= 0 {
		cfg.Database.QueryTimeout = 5 * time.Second
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.State.TTL <= 0 {
		cfg.State.TTL = 15 * time.Minute
	}
	if cfg.RateLimit.PerMinute == nil {
		n := DefaultRateLimitPerMinute
		cfg.RateLimit.PerMinute = &n
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// validateTgSecret enforces the character set Telegram accepts for secret_token.
func validateTgSecret(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return err
	}
	if err := v.RegisterValidation("tgsecret", validateTgSecret); err != nil {
		return err
	}
	if err := v.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Bot.Mode == ModeWebhook && cfg.Bot.WebhookBaseURL == "" {
		return errors.New("invalid config: bot.webhook_base_url is required in webhook mode")
	}
	if cfg.Bot.Mode == ModeWebhook && cfg.Bot.WebhookSecret == "" {
		return errors.New("invalid config: bot.webhook_secret is required in webhook mode")
	}
	return nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
