package usecase

import (
	"context"
	"time"

	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
	"shopping-list-bot/internal/infra/logging"
	"shopping-list-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ListUseCase = (*listUC)(nil)

// ListUseCase is the list store facade the command router talks to. Each
// method is one filtered store request bounded by the configured timeout.
type ListUseCase interface {
	AddItem(ctx context.Context, ownerID int64, name string, quantity int) (*model.ShoppingItem, error)
	ListItems(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error)
	// DeleteItem returns the number of rows removed; zero means nothing matched.
	DeleteItem(ctx context.Context, ownerID int64, sel model.ItemSelector) (int64, error)
	ClearItems(ctx context.Context, ownerID int64) (int64, error)
}

type listUC struct {
	items   repository.ItemRepository
	timeout time.Duration
	log     *zerolog.Logger
}

func NewListUseCase(items repository.ItemRepository, timeout time.Duration, logger *zerolog.Logger) *listUC {
	return &listUC{items: items, timeout: timeout, log: logger}
}

func (l *listUC) AddItem(ctx context.Context, ownerID int64, name string, quantity int) (*model.ShoppingItem, error) {
	defer logging.TraceDuration(l.log, "ListUC.AddItem")()

	it, err := model.NewShoppingItem(ownerID, name, quantity)
	if err != nil {
		return nil, err
	}
	_, err = callStore(ctx, l.timeout, "add_item", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, l.items.Insert(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	metrics.IncItemsAdded()
	return it, nil
}

func (l *listUC) ListItems(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error) {
	defer logging.TraceDuration(l.log, "ListUC.ListItems")()
	return callStore(ctx, l.timeout, "list_items", func(ctx context.Context) ([]*model.ShoppingItem, error) {
		return l.items.ListByOwner(ctx, ownerID)
	})
}

func (l *listUC) DeleteItem(ctx context.Context, ownerID int64, sel model.ItemSelector) (int64, error) {
	defer logging.TraceDuration(l.log, "ListUC.DeleteItem")()

	if err := sel.Validate(); err != nil {
		return 0, err
	}
	if sel.IsByID() {
		n, err := callStore(ctx, l.timeout, "delete_item", func(ctx context.Context) (int64, error) {
			return l.items.DeleteByID(ctx, ownerID, sel.ID)
		})
		if err == nil {
			metrics.AddItemsDeleted("id", n)
		}
		return n, err
	}
	n, err := callStore(ctx, l.timeout, "delete_item", func(ctx context.Context) (int64, error) {
		return l.items.DeleteByName(ctx, ownerID, sel.Name)
	})
	if err == nil {
		metrics.AddItemsDeleted("name", n)
	}
	return n, err
}

func (l *listUC) ClearItems(ctx context.Context, ownerID int64) (int64, error) {
	defer logging.TraceDuration(l.log, "ListUC.ClearItems")()
	n, err := callStore(ctx, l.timeout, "clear_items", func(ctx context.Context) (int64, error) {
		return l.items.DeleteByOwner(ctx, ownerID)
	})
	if err == nil {
		metrics.IncListCleared()
		metrics.AddItemsDeleted("clear", n)
	}
	return n, err
}
