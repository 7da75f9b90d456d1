package repository

import (
	"context"

	"shopping-list-bot/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// FindByTelegramID returns domain.ErrNotFound when no row exists.
	FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error)
	// Create inserts u unless a row with the same Telegram id exists.
	// inserted is false when the row was already there.
	Create(ctx context.Context, u *model.User) (inserted bool, err error)
	CountUsers(ctx context.Context) (int, error)
}
