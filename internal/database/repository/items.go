package repository

import (
	"context"
	"database/sql"
)

// dbtx is the part of *sql.DB and *sql.Tx the repository uses.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ItemRepo handles menu items.
type ItemRepo struct {
	db dbtx
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// WithTx returns a repo that runs its statements inside tx.
func (r *ItemRepo) WithTx(tx *sql.Tx) *ItemRepo {
	return &ItemRepo{db: tx}
}

// Upsert inserts or updates an item keyed by id.
func (r *ItemRepo) Upsert(ctx context.Context, it Item) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO items(id, title, icon, destination, description, sort_order)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 icon=excluded.icon,
	 destination=excluded.destination,
	 description=excluded.description,
	 sort_order=excluded.sort_order;
	`, it.ID, it.Title, it.Icon, it.Destination, it.Description, it.SortOrder)
	return err
}

// List returns items in display order.
func (r *ItemRepo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, icon, destination, description, sort_order FROM items ORDER BY sort_order, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Icon, &it.Destination, &it.Description, &it.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// Count returns the number of items.
func (r *ItemRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n)
	return n, err
}

// DeleteAll removes every item.
func (r *ItemRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	return err
}
