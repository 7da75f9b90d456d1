package telegram

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopping-list-bot/internal/application"
	"shopping-list-bot/internal/config"
	"shopping-list-bot/internal/domain/ports/adapter"
	"shopping-list-bot/internal/infra/logging"
	"shopping-list-bot/internal/infra/metrics"
	red "shopping-list-bot/internal/infra/redis"
	"shopping-list-bot/internal/infra/worker"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// secretHeader carries the secret_token given to setWebhook.
const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// Router turns one inbound message or button press into a reply.
type Router interface {
	HandleMessage(ctx context.Context, in application.Incoming) application.Reply
	HandleCallback(ctx context.Context, in application.Incoming, data string) application.Reply
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RealTelegramBotAdapter receives updates by polling or webhook, hands each
// one to the worker pool and delivers the router's reply.
type RealTelegramBotAdapter struct {
	bot       botAPI
	cfg       *config.BotConfig
	router    Router
	pool      *worker.Pool
	limiter   Limiter
	perMinute int
	tr        application.Translator
	log       *zerolog.Logger
}

// NewRealTelegramBotAdapter connects to the Bot API. limiter may be nil, which
// disables rate limiting.
func NewRealTelegramBotAdapter(cfg *config.BotConfig, router Router, pool *worker.Pool, limiter Limiter, perMinute int, tr application.Translator, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return newAdapter(bot, cfg, router, pool, limiter, perMinute, tr, logger)
}

func newAdapter(bot botAPI, cfg *config.BotConfig, router Router, pool *worker.Pool, limiter Limiter, perMinute int, tr application.Translator, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if router == nil {
		return nil, errors.New("router is nil")
	}
	if pool == nil {
		return nil, errors.New("worker pool is nil")
	}
	if tr == nil {
		return nil, errors.New("translator is nil")
	}
	return &RealTelegramBotAdapter{
		bot:       bot,
		cfg:       cfg,
		router:    router,
		pool:      pool,
		limiter:   limiter,
		perMinute: perMinute,
		tr:        tr,
		log:       logging.Component(logger, "telegram"),
	}, nil
}

// StartPolling long-polls getUpdates until ctx is cancelled.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)
	r.log.Info().Msg("polling for updates")

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			if err := r.enqueue(ctx, up); err != nil {
				r.bot.StopReceivingUpdates()
				return err
			}
		}
	}
}

// WebhookHandler accepts update POSTs from Telegram. The update is queued and
// acknowledged right away; the reply goes out through the Bot API. Requests
// without the configured secret token are refused before parsing.
func (r *RealTelegramBotAdapter) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.validSecret(req.Header.Get(secretHeader)) {
			r.log.Warn().Str("remote", req.RemoteAddr).Msg("webhook request with bad secret token")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		up, err := r.bot.HandleUpdate(req)
		if err != nil {
			r.log.Warn().Err(err).Msg("bad webhook payload")
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		if err := r.enqueue(req.Context(), *up); err != nil {
			r.log.Error().Err(err).Int("update_id", up.UpdateID).Msg("dropping webhook update")
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

// validSecret fails closed: an unset secret rejects every request.
func (r *RealTelegramBotAdapter) validSecret(got string) bool {
	want := r.cfg.WebhookSecret
	if want == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

// SetWebhook registers <base><path> with Telegram together with the secret
// token Telegram echoes back on every delivery. WebhookConfig in this
// tgbotapi release has no secret_token field, so the call is made directly.
func (r *RealTelegramBotAdapter) SetWebhook(ctx context.Context) error {
	if r.cfg.WebhookSecret == "" {
		return errors.New("webhook secret is not configured")
	}
	url := strings.TrimRight(r.cfg.WebhookBaseURL, "/") + r.cfg.WebhookPath
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", r.cfg.WebhookSecret)
	if _, err := r.bot.MakeRequest("setWebhook", params); err != nil {
		return err
	}
	r.log.Info().Str("url", url).Msg("webhook registered")
	return nil
}

// DeleteWebhook removes any webhook so getUpdates works again.
func (r *RealTelegramBotAdapter) DeleteWebhook(ctx context.Context) error {
	_, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{})
	return err
}

func (r *RealTelegramBotAdapter) enqueue(ctx context.Context, up tgbotapi.Update) error {
	return r.pool.Submit(ctx, func(ctx context.Context) error {
		return r.handleUpdate(ctx, up)
	})
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	start := time.Now()
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	switch {
	case update.CallbackQuery != nil:
		defer func() { metrics.ObserveUpdate("callback", time.Since(start)) }()
		return r.handleQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		defer func() { metrics.ObserveUpdate("message", time.Since(start)) }()
		return r.handleMessage(ctx, update.Message)
	}
	return nil
}

func (r *RealTelegramBotAdapter) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil || msg.Chat == nil || msg.Text == "" {
		return nil
	}
	in := incomingFrom(msg.From, msg.Chat.ID, msg.Text)
	if !r.allow(ctx, in.SenderID) {
		return r.SendMessage(ctx, in.ChatID, r.tr.T("rate_limited"))
	}
	return r.Deliver(ctx, in.ChatID, r.router.HandleMessage(ctx, in))
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the client spinner whatever happens.
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	chatID := query.From.ID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}
	in := incomingFrom(query.From, chatID, "")
	if !r.allow(ctx, in.SenderID) {
		return r.SendMessage(ctx, chatID, r.tr.T("rate_limited"))
	}
	return r.Deliver(ctx, chatID, r.router.HandleCallback(ctx, in, query.Data))
}

// allow fails open: a limiter error lets the message through.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, senderID int64) bool {
	if r.limiter == nil || r.perMinute <= 0 {
		return true
	}
	ok, err := r.limiter.Allow(ctx, red.UserKey(senderID), r.perMinute, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !ok {
		metrics.IncRateLimitTriggered()
	}
	return ok
}

func incomingFrom(u *tgbotapi.User, chatID int64, text string) application.Incoming {
	return application.Incoming{
		SenderID: u.ID,
		ChatID:   chatID,
		Name:     strings.TrimSpace(u.FirstName + " " + u.LastName),
		Username: u.UserName,
		Text:     text,
	}
}

// Deliver sends reply to chatID; an empty reply sends nothing.
func (r *RealTelegramBotAdapter) Deliver(ctx context.Context, chatID int64, reply application.Reply) error {
	return deliver(ctx, r, chatID, reply)
}

func deliver(ctx context.Context, a adapter.TelegramBotAdapter, chatID int64, reply application.Reply) error {
	if reply.Empty() {
		return nil
	}
	if len(reply.Buttons) > 0 {
		return a.SendButtons(ctx, chatID, reply.Text, reply.Buttons)
	}
	return a.SendMessage(ctx, chatID, reply.Text)
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

// SendButtons sends a message with inline buttons.
// - If btn.URL is set, the button opens a link
// - Else if btn.Data is set, the button sends callback data
// - Else btn.Text is used as callback data
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kr := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				kr = append(kr, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, kr)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if len(kbRows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	}
	_, err := r.bot.Send(msg)
	return err
}
