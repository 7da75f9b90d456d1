package model

import (
	"strings"
	"time"

	"shopping-list-bot/internal/domain"
)

// User is a Telegram user that has talked to the bot. The Telegram id is the
// ownership key for every shopping item.
type User struct {
	TelegramID int64     `json:"telegram_id"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewUser(tgID int64, name, username string) (*User, error) {
	if tgID <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		TelegramID: tgID,
		Name:       strings.TrimSpace(name),
		Username:   strings.TrimPrefix(strings.TrimSpace(username), "@"),
		CreatedAt:  time.Now().UTC(),
	}, nil
}
