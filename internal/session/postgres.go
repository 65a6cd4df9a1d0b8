package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore persists sessions in the sessions table as JSONB, one row
// per user. It lets several bot instances share conversation state.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Get(ctx context.Context, userID int64) (Session, error) {
	var raw []byte
	err := p.db.GetContext(ctx, &raw,
		`SELECT data FROM sessions WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("session get: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return Session{}, fmt.Errorf("session decode: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Put(ctx context.Context, userID int64, s Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, data, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = now()`,
		userID, raw)
	if err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context, userID int64) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
