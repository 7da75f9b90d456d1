package repository

import (
	"context"

	"shopping-list-bot/internal/domain/model"
)

// StateRepository is the port for managing any user's conversational state.
// GetState returns the idle state, not an error, when nothing is stored.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *model.ConversationState) error
	GetState(ctx context.Context, tgID int64) (*model.ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}
