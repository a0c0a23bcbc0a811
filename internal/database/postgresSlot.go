package database

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type postgresSlot struct {
	db *sql.DB
}

func NewPostgresSlot(db *sql.DB) Slot {
	return &postgresSlot{db: db}
}

func (s *postgresSlot) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM editor_slots WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return []byte(value), nil
}

func (s *postgresSlot) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO editor_slots (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now())
	return err
}

func (s *postgresSlot) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM editor_slots WHERE key = $1`, key)
	return err
}
