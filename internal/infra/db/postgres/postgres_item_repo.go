package postgres

import (
	"context"

	"shopping-list-bot/internal/domain/model"
	"shopping-list-bot/internal/domain/ports/repository"
)

var _ repository.ItemRepository = (*PostgresItemRepo)(nil)

type PostgresItemRepo struct {
	db dbtx
}

func NewPostgresItemRepo(db dbtx) *PostgresItemRepo {
	return &PostgresItemRepo{db: db}
}

func (r *PostgresItemRepo) Insert(ctx context.Context, it *model.ShoppingItem) error {
	const q = `
INSERT INTO shopping_items (telegram_id, name, quantity)
VALUES ($1,$2,$3)
RETURNING id, created_at;`
	return r.db.QueryRow(ctx, q, it.OwnerID, it.Name, it.Quantity).Scan(&it.ID, &it.CreatedAt)
}

func (r *PostgresItemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]*model.ShoppingItem, error) {
	const q = `
SELECT id, telegram_id, name, quantity, created_at
  FROM shopping_items
 WHERE telegram_id=$1
 ORDER BY created_at ASC, id ASC;`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ShoppingItem
	for rows.Next() {
		var it model.ShoppingItem
		if err := rows.Scan(&it.ID, &it.OwnerID, &it.Name, &it.Quantity, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

func (r *PostgresItemRepo) DeleteByID(ctx context.Context, ownerID, id int64) (int64, error) {
	return r.exec(ctx, `DELETE FROM shopping_items WHERE telegram_id=$1 AND id=$2;`, ownerID, id)
}

func (r *PostgresItemRepo) DeleteByName(ctx context.Context, ownerID int64, name string) (int64, error) {
	return r.exec(ctx, `DELETE FROM shopping_items WHERE telegram_id=$1 AND name=$2;`, ownerID, name)
}

func (r *PostgresItemRepo) DeleteByOwner(ctx context.Context, ownerID int64) (int64, error) {
	return r.exec(ctx, `DELETE FROM shopping_items WHERE telegram_id=$1;`, ownerID)
}

func (r *PostgresItemRepo) exec(ctx context.Context, q string, args ...interface{}) (int64, error) {
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
