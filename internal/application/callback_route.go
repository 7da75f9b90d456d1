package application

import (
	"context"

	"shopping-list-bot/internal/domain/model"
)

const (
	cbList   = "cmd:list"
	cbDelete = "cmd:delete"
	cbHelp   = "cmd:help"
)

// Exact-match callbacks
func (b *BotFacade) cbRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		cbList:   b.handleList,
		cbDelete: b.deletePromptCBRoute,
		cbHelp:   b.handleHelp,
	}
}

// deletePromptCBRoute arms the two-step delete: the next plain text from the
// sender is taken as the delete target.
func (b *BotFacade) deletePromptCBRoute(ctx context.Context, in Incoming, _ string) (Reply, error) {
	if err := b.states.SetState(ctx, in.SenderID, model.AwaitingDeleteTarget()); err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.tr.T("delete_prompt")}, nil
}
