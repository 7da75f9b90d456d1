package usecase

import (
	"context"
	"errors"
	"time"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
	"shopping-list-bot/internal/infra/logging"
	"shopping-list-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes user-related operations used by bot flows.
type UserUseCase interface {
	// EnsureRegistered creates the user on first contact. created is false
	// when the user already existed.
	EnsureRegistered(ctx context.Context, tgID int64, name, username string) (created bool, err error)
	Count(ctx context.Context) (int, error)
}

type userUC struct {
	users   repository.UserRepository
	timeout time.Duration
	dev     bool
	log     *zerolog.Logger
}

// NewUserUseCase builds the user use case. Outside dev, usernames are redacted
// in logs.
func NewUserUseCase(users repository.UserRepository, timeout time.Duration, dev bool, logger *zerolog.Logger) *userUC {
	return &userUC{
		users:   users,
		timeout: timeout,
		dev:     dev,
		log:     logger,
	}
}

// EnsureRegistered reads first and inserts only when missing. The two steps
// are not isolated: a concurrent insert makes Create report inserted=false,
// which is the same outcome as finding the row.
func (u *userUC) EnsureRegistered(ctx context.Context, tgID int64, name, username string) (bool, error) {
	defer logging.TraceDuration(u.log, "UserUC.EnsureRegistered")()

	_, err := callStore(ctx, u.timeout, "find_user", func(ctx context.Context) (*model.User, error) {
		return u.users.FindByTelegramID(ctx, tgID)
	})
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	nu, err := model.NewUser(tgID, name, username)
	if err != nil {
		return false, err
	}
	inserted, err := callStore(ctx, u.timeout, "create_user", func(ctx context.Context) (bool, error) {
		return u.users.Create(ctx, nu)
	})
	if err != nil {
		return false, err
	}
	if inserted {
		metrics.IncUsersRegistered()
		u.log.Info().Int64("tg_id", tgID).Str("username", logging.Redact(nu.Username, u.dev)).Msg("user registered")
	}
	return inserted, nil
}

func (u *userUC) Count(ctx context.Context) (int, error) {
	defer logging.TraceDuration(u.log, "UserUC.Count")()
	return callStore(ctx, u.timeout, "count_users", u.users.CountUsers)
}
