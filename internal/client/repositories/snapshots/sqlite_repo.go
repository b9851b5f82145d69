package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dsmolyakov/jobdeck/internal/common"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, name string, data []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, data, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at
	`, name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, name string) ([]byte, time.Time, error) {
	var data []byte
	var savedAt time.Time
	err := r.db.QueryRowContext(ctx,
		`SELECT data, saved_at FROM snapshots WHERE name = ?`, name).Scan(&data, &savedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, common.ErrorNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to load snapshot[%s]: %w", name, err)
	}
	return data, savedAt, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete snapshot[%s]: %w", name, err)
	}
	return nil
}
