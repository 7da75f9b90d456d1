package telegram

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"shopping-list-bot/internal/application"
	"shopping-list-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter prints replies to a writer instead of sending them. The
// console command uses it.
type NoopBotAdapter struct {
	mu sync.Mutex
	w  io.Writer
}

func NewNoopBotAdapter(w io.Writer) *NoopBotAdapter {
	return &NoopBotAdapter{w: w}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := fmt.Fprintln(b.w, text)
	return err
}

// SendButtons prints each button as "[label] !data" so the console user can
// press it by typing the data back.
func (b *NoopBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var sb strings.Builder
	sb.WriteString(text)
	for _, row := range rows {
		for _, btn := range row {
			target := "!" + btn.Data
			if btn.URL != "" {
				target = btn.URL
			}
			fmt.Fprintf(&sb, "\n  [%s] %s", btn.Text, target)
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := fmt.Fprintln(b.w, sb.String())
	return err
}

func (b *NoopBotAdapter) Deliver(ctx context.Context, chatID int64, reply application.Reply) error {
	return deliver(ctx, b, chatID, reply)
}
