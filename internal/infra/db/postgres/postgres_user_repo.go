package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
)

var _ repository.UserRepository = (*PostgresUserRepo)(nil)

type PostgresUserRepo struct {
	db dbtx
}

func NewPostgresUserRepo(db dbtx) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) FindByTelegramID(ctx context.Context, tgID int64) (*model.User, error) {
	const q = `
SELECT telegram_id, name, username, created_at
  FROM users WHERE telegram_id=$1;`
	var u model.User
	if err := r.db.QueryRow(ctx, q, tgID).Scan(&u.TelegramID, &u.Name, &u.Username, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create never overwrites: an existing row leaves inserted=false.
func (r *PostgresUserRepo) Create(ctx context.Context, u *model.User) (bool, error) {
	const q = `
INSERT INTO users (telegram_id, name, username, created_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (telegram_id) DO NOTHING;`
	tag, err := r.db.Exec(ctx, q, u.TelegramID, u.Name, u.Username, u.CreatedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostgresUserRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users;`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
