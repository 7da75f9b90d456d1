package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
	"shopping-list-bot/internal/infra/metrics"
	red "shopping-list-bot/internal/infra/redis"
)

var _ repository.UserRepository = (*userRepoCacheDecorator)(nil)

// userRepoCacheDecorator serves repeated /start lookups from Redis. Users are
// never mutated, so entries only need a TTL, not invalidation.
type userRepoCacheDecorator struct {
	inner repository.UserRepository
	cache red.RedisClient
	ttl   time.Duration
	log   *zerolog.Logger
}

func NewUserRepoCacheDecorator(inner repository.UserRepository, cache red.RedisClient, ttl time.Duration, logger *zerolog.Logger) repository.UserRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &userRepoCacheDecorator{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   logger,
	}
}

func userKey(tgID int64) string { return fmt.Sprintf("user:tgid:%d", tgID) }

func (d *userRepoCacheDecorator) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	key := userKey(tgID)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		var user model.User
		if json.Unmarshal([]byte(val), &user) == nil {
			metrics.IncCacheRequest("user", "hit")
			return &user, nil
		}
	} else if !errors.Is(err, red.Nil) {
		d.log.Warn().Err(err).Str("key", key).Msg("user cache read failed")
	}

	metrics.IncCacheRequest("user", "miss")
	user, err := d.inner.FindByTelegramID(ctx, tgID)
	if err != nil {
		return nil, err
	}
	d.store(ctx, user)
	return user, nil
}

func (d *userRepoCacheDecorator) Create(ctx context.Context, u *model.User) (bool, error) {
	inserted, err := d.inner.Create(ctx, u)
	if err == nil && inserted {
		d.store(ctx, u)
	}
	return inserted, err
}

func (d *userRepoCacheDecorator) CountUsers(ctx context.Context) (int, error) {
	return d.inner.CountUsers(ctx)
}

func (d *userRepoCacheDecorator) store(ctx context.Context, u *model.User) {
	if u == nil {
		return
	}
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, userKey(u.TelegramID), b, d.ttl); err != nil {
		d.log.Warn().Err(err).Int64("tg_id", u.TelegramID).Msg("user cache write failed")
	}
}
