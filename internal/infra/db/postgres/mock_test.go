//go:build !integration

package postgres

import (
	"context"
	"time"

	"shopping-list-bot/internal/domain/model"
	red "shopping-list-bot/internal/infra/redis"
)

// mockInnerUserRepo mocks the database user repository.
type mockInnerUserRepo struct {
	FindByTelegramIDFunc func(ctx context.Context, tgID int64) (*model.User, error)
	CreateFunc           func(ctx context.Context, u *model.User) (bool, error)
	CountUsersFunc       func(ctx context.Context) (int, error)
}

func (m *mockInnerUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	return m.FindByTelegramIDFunc(ctx, tgID)
}
func (m *mockInnerUserRepo) Create(ctx context.Context, u *model.User) (bool, error) {
	return m.CreateFunc(ctx, u)
}
func (m *mockInnerUserRepo) CountUsers(ctx context.Context) (int, error) {
	return m.CountUsersFunc(ctx)
}

// mockRedisClient mocks our Redis client wrapper.
type mockRedisClient struct {
	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	DelFunc    func(ctx context.Context, keys ...string) error
	PingFunc   func(ctx context.Context) error
	IncrFunc   func(ctx context.Context, key string) (int64, error)
	ExpireFunc func(ctx context.Context, key string, expiration time.Duration) error
	CloseFunc  func() error
}

var _ red.RedisClient = &mockRedisClient{}

func (m *mockRedisClient) Get(ctx context.Context, key string) (string, error) {
	return m.GetFunc(ctx, key)
}
func (m *mockRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.SetFunc(ctx, key, value, expiration)
}
func (m *mockRedisClient) Del(ctx context.Context, keys ...string) error {
	return m.DelFunc(ctx, keys...)
}
func (m *mockRedisClient) Ping(ctx context.Context) error { return m.PingFunc(ctx) }
func (m *mockRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	return m.IncrFunc(ctx, key)
}
func (m *mockRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return m.ExpireFunc(ctx, key, expiration)
}
func (m *mockRedisClient) Close() error { return m.CloseFunc() }
