package application

import (
	"context"
	"strings"
	"unicode/utf8"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/adapter"
)

type commandHandler func(ctx context.Context, in Incoming, args string) (Reply, error)

// commandRoutes defines all available bot commands and their handlers.
func (b *BotFacade) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":  b.handleStart,
		"add":    b.handleAdd,
		"list":   b.handleList,
		"delete": b.handleDelete,
		"clear":  b.handleClear,
		"ping":   b.handlePing,
		"cancel": b.handleCancel,
		"help":   b.handleHelp,
	}
}

func (b *BotFacade) handleStart(ctx context.Context, in Incoming, _ string) (Reply, error) {
	if _, err := b.users.EnsureRegistered(ctx, in.SenderID, in.Name, in.Username); err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.tr.T("greeting"), Buttons: b.mainMenu()}, nil
}

func (b *BotFacade) handleAdd(ctx context.Context, in Incoming, args string) (Reply, error) {
	qty, name, err := parseAddArgs(args)
	if err != nil {
		return Reply{}, err
	}
	it, err := b.lists.AddItem(ctx, in.SenderID, name, qty)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.tr.T("added", it.Quantity, it.Name)}, nil
}

func (b *BotFacade) handleList(ctx context.Context, in Incoming, _ string) (Reply, error) {
	items, err := b.lists.ListItems(ctx, in.SenderID)
	if err != nil {
		return Reply{}, err
	}
	if len(items) == 0 {
		return Reply{Text: b.tr.T("list_empty")}, nil
	}
	return Reply{
		Text:    b.formatList(items),
		Buttons: [][]adapter.InlineButton{{{Text: b.tr.T("btn_delete"), Data: cbDelete}}},
	}, nil
}

// maxMessageRunes is the longest text Telegram accepts in one message.
const maxMessageRunes = 4096

// formatList renders one line per item. Lines that would push the reply past
// maxMessageRunes are replaced by a single "and N more" line.
func (b *BotFacade) formatList(items []*model.ShoppingItem) string {
	var sb strings.Builder
	size := 0
	for i, it := range items {
		line := b.tr.T("list_line", i+1, it.Quantity, it.Name)
		n := utf8.RuneCountInString(line)
		if i > 0 {
			n++
		}
		reserve := 0
		if left := len(items) - i - 1; left > 0 {
			reserve = 1 + utf8.RuneCountInString(b.tr.T("list_more", left))
		}
		if size+n+reserve > maxMessageRunes {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(b.tr.T("list_more", len(items)-i))
			break
		}
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		size += n
	}
	return sb.String()
}

// handleDelete addresses by 1-based list position when args is a positive
// integer and by exact name otherwise. The position is resolved with one
// read before the delete.
func (b *BotFacade) handleDelete(ctx context.Context, in Incoming, args string) (Reply, error) {
	index, name, err := parseDeleteArgs(args)
	if err != nil {
		return Reply{}, err
	}

	sel := model.ByName(name)
	if index > 0 {
		items, err := b.lists.ListItems(ctx, in.SenderID)
		if err != nil {
			return Reply{}, err
		}
		if index > len(items) {
			return Reply{}, domain.ErrItemNotFound
		}
		target := items[index-1]
		sel, name = model.ByID(target.ID), target.Name
	}

	n, err := b.lists.DeleteItem(ctx, in.SenderID, sel)
	if err != nil {
		return Reply{}, err
	}
	if n == 0 {
		return Reply{}, domain.ErrItemNotFound
	}
	return Reply{Text: b.tr.T("deleted", name)}, nil
}

func (b *BotFacade) handleClear(ctx context.Context, in Incoming, _ string) (Reply, error) {
	if _, err := b.lists.ClearItems(ctx, in.SenderID); err != nil {
		return Reply{}, err
	}
	return Reply{Text: b.tr.T("cleared")}, nil
}

func (b *BotFacade) handlePing(context.Context, Incoming, string) (Reply, error) {
	return Reply{Text: b.tr.T("pong")}, nil
}

// handleCancel only confirms: any pending flow was already reset when the
// command arrived.
func (b *BotFacade) handleCancel(context.Context, Incoming, string) (Reply, error) {
	return Reply{Text: b.tr.T("cancelled")}, nil
}

func (b *BotFacade) handleHelp(context.Context, Incoming, string) (Reply, error) {
	return Reply{Text: b.tr.T("help"), Buttons: b.mainMenu()}, nil
}
