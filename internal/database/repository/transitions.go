package repository

import (
	"context"
	"database/sql"
)

// TransitionRepo is the append-only journal of committed transitions.
type TransitionRepo struct {
	db *sql.DB
}

func NewTransitionRepo(db *sql.DB) *TransitionRepo {
	return &TransitionRepo{db: db}
}

func (r *TransitionRepo) Insert(ctx context.Context, t Transition) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transitions(id, state, source, destination, at)
	VALUES(?, ?, ?, ?, ?);
	`, t.ID, t.State, t.Source, t.Destination, t.At)
	return err
}

// Recent returns up to limit transitions, newest first.
func (r *TransitionRepo) Recent(ctx context.Context, limit int) ([]Transition, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, state, source, destination, at
	FROM transitions
	ORDER BY at DESC, rowid DESC
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transition
	for rows.Next() {
		var t Transition
		if err := rows.Scan(&t.ID, &t.State, &t.Source, &t.Destination, &t.At); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Count returns how many transitions were committed to state.
func (r *TransitionRepo) Count(ctx context.Context, state string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transitions WHERE state = ?`, state).Scan(&n)
	return n, err
}
