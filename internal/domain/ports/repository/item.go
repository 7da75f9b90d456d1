package repository

import (
	"context"

	"shopping-list-bot/internal/domain/model"
)

// -----------------------------
// Shopping items
// -----------------------------

// ItemRepository stores shopping items. Every method is a single statement
// filtered by owner; none of them opens a transaction.
type ItemRepository interface {
	// Insert fills it.ID and it.CreatedAt from the store.
	Insert(ctx context.Context, it *model.ShoppingItem) error
	// ListByOwner returns items in insertion order (created_at, id).
	ListByOwner(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error)
	DeleteByID(ctx context.Context, ownerID, id int64) (int64, error)
	DeleteByName(ctx context.Context, ownerID int64, name string) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
