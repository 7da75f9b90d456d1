package model

import (
	"strings"
	"time"
	"unicode/utf8"

	"shopping-list-bot/internal/domain"
)

const (
	DefaultQuantity   = 1
	MaxQuantity       = 9999
	MaxItemNameLength = 200
)

// ShoppingItem is one row of a user's shopping list. ID and CreatedAt are
// assigned by the store on insert.
type ShoppingItem struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// NewShoppingItem validates name and quantity and returns an unsaved item.
// An all-digit name is refused: "delete 5" always means the fifth row, so such
// an item could never be deleted by name.
func NewShoppingItem(ownerID int64, name string, quantity int) (*ShoppingItem, error) {
	if ownerID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyItemName
	}
	if utf8.RuneCountInString(name) > MaxItemNameLength {
		return nil, domain.ErrItemNameTooLong
	}
	if strings.Trim(name, "0123456789") == "" {
		return nil, domain.ErrNumericItemName
	}
	if quantity < 1 || quantity > MaxQuantity {
		return nil, domain.ErrInvalidQuantity
	}
	return &ShoppingItem{
		OwnerID:  ownerID,
		Name:     name,
		Quantity: quantity,
	}, nil
}

// ItemSelector addresses rows to delete either by store id or by exact name.
type ItemSelector struct {
	ID   int64
	Name string
}

func ByID(id int64) ItemSelector     { return ItemSelector{ID: id} }
func ByName(name string) ItemSelector { return ItemSelector{Name: name} }

func (s ItemSelector) IsByID() bool { return s.ID > 0 }

func (s ItemSelector) Validate() error {
	if s.ID < 0 {
		return domain.ErrInvalidArgument
	}
	if s.ID == 0 && s.Name == "" {
		return domain.ErrEmptySelector
	}
	return nil
}
