package application

import (
	"context"

	"shopping-list-bot/internal/domain/model"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// These describe the minimal surface that the facade needs. Using interfaces
// enables tests to pass in light-weight mocks.

type UserUseCaseIface interface {
	EnsureRegistered(ctx context.Context, tgID int64, name, username string) (bool, error)
}

type ListUseCaseIface interface {
	AddItem(ctx context.Context, ownerID int64, name string, quantity int) (*model.ShoppingItem, error)
	ListItems(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error)
	DeleteItem(ctx context.Context, ownerID int64, sel model.ItemSelector) (int64, error)
	ClearItems(ctx context.Context, ownerID int64) (int64, error)
}

// Translator renders reply texts from the catalog.
type Translator interface {
	T(key string, args ...interface{}) string
}
