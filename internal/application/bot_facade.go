package application

import (
	"context"
	"errors"
	"strings"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/adapter"
	"shopping-list-bot/internal/domain/ports/repository"
	"shopping-list-bot/internal/infra/logging"
	"shopping-list-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Incoming is one text message or button press as seen by the router,
// independent of the chat transport.
type Incoming struct {
	SenderID int64
	ChatID   int64
	Name     string
	Username string
	Text     string
}

// Reply is what the transport sends back. An empty Text means no reply.
type Reply struct {
	Text    string
	Buttons [][]adapter.InlineButton
}

func (r Reply) Empty() bool { return strings.TrimSpace(r.Text) == "" }

// BotFacade is the command router: it parses the text of each incoming
// message, runs exactly one list store operation and formats the reply.
// Messages from one sender are handled one at a time.
type BotFacade struct {
	users  UserUseCaseIface
	lists  ListUseCaseIface
	states repository.StateRepository
	tr     Translator
	locks  *senderLocks
	log    *zerolog.Logger
}

func NewBotFacade(users UserUseCaseIface, lists ListUseCaseIface, states repository.StateRepository, tr Translator, logger *zerolog.Logger) *BotFacade {
	return &BotFacade{
		users:  users,
		lists:  lists,
		states: states,
		tr:     tr,
		locks:  newSenderLocks(),
		log:    logging.Component(logger, "router"),
	}
}

// HandleMessage routes one text message. It never returns an error: every
// failure is turned into a reply by failure.
func (b *BotFacade) HandleMessage(ctx context.Context, in Incoming) Reply {
	unlock := b.locks.Lock(in.SenderID)
	defer unlock()

	ctx = logging.WithTgID(ctx, in.SenderID)
	state := b.loadState(ctx, in.SenderID)

	cmd, args, slash := parseCommand(in.Text)
	if state.IsAwaitingDeleteTarget() {
		b.resetState(ctx, in.SenderID)
		if !slash {
			return b.dispatch(ctx, "delete", in, strings.TrimSpace(in.Text), b.handleDelete)
		}
	}

	if cmd == "" {
		return Reply{}
	}
	handler, ok := b.commandRoutes()[cmd]
	if !ok {
		return Reply{Text: b.tr.T("unknown_command")}
	}
	return b.dispatch(ctx, cmd, in, args, handler)
}

// HandleCallback routes an inline button press.
func (b *BotFacade) HandleCallback(ctx context.Context, in Incoming, data string) Reply {
	unlock := b.locks.Lock(in.SenderID)
	defer unlock()

	ctx = logging.WithTgID(ctx, in.SenderID)
	data = strings.TrimSpace(data)
	handler, ok := b.cbRoutes()[data]
	if !ok {
		logging.With(ctx, b.log).Warn().Str("data", data).Msg("unknown callback data")
		return Reply{}
	}
	return b.dispatch(ctx, data, in, "", handler)
}

func (b *BotFacade) dispatch(ctx context.Context, cmd string, in Incoming, args string, h commandHandler) Reply {
	metrics.IncTelegramCommand(cmd)
	ctx = logging.WithCommand(ctx, cmd)
	reply, err := h(ctx, in, args)
	if err != nil {
		return b.failure(ctx, cmd, in, err)
	}
	return reply
}

// failure is the single place where errors become user-visible text.
func (b *BotFacade) failure(ctx context.Context, cmd string, in Incoming, err error) Reply {
	l := logging.With(ctx, b.log)
	if domain.IsUserInput(err) {
		l.Debug().Err(err).Msg("rejected input")
	}

	switch {
	case errors.Is(err, domain.ErrEmptyItemName):
		return Reply{Text: b.tr.T("usage_add")}
	case errors.Is(err, domain.ErrInvalidQuantity):
		return Reply{Text: b.tr.T("error_invalid_quantity", model.MaxQuantity)}
	case errors.Is(err, domain.ErrItemNameTooLong):
		return Reply{Text: b.tr.T("error_name_too_long", model.MaxItemNameLength)}
	case errors.Is(err, domain.ErrNumericItemName):
		return Reply{Text: b.tr.T("error_numeric_name")}
	case errors.Is(err, domain.ErrEmptySelector):
		return Reply{Text: b.tr.T("usage_delete")}
	case errors.Is(err, domain.ErrItemNotFound):
		return Reply{Text: b.tr.T("item_not_found")}
	}

	l.Error().Err(err).Str("command", cmd).Int64("sender_id", in.SenderID).Msg("command failed")
	metrics.IncCommandFailure(cmd)
	return Reply{Text: b.tr.T("error_generic")}
}

// loadState falls back to idle when the state store is unreachable so that
// plain commands keep working.
func (b *BotFacade) loadState(ctx context.Context, senderID int64) *model.ConversationState {
	st, err := b.states.GetState(ctx, senderID)
	if err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("failed to load conversation state")
		return model.IdleState()
	}
	return st
}

func (b *BotFacade) resetState(ctx context.Context, senderID int64) {
	if err := b.states.ClearState(ctx, senderID); err != nil {
		logging.With(ctx, b.log).Warn().Err(err).Msg("failed to clear conversation state")
	}
}

func (b *BotFacade) mainMenu() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{{Text: b.tr.T("btn_list"), Data: cbList}},
		{{Text: b.tr.T("btn_delete"), Data: cbDelete}},
		{{Text: b.tr.T("btn_help"), Data: cbHelp}},
	}
}
