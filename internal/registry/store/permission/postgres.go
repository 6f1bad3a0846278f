package permission

import (
	"context"
	"database/sql"
	"fmt"

	"cnft/pkg/domain"
	"cnft/pkg/platform/tx"
)

// PostgresStore persists view-permission grants in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema returns the DDL the store expects.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS view_permissions (
	token_id BIGINT NOT NULL,
	viewer   BYTEA NOT NULL,
	PRIMARY KEY (token_id, viewer)
)`
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q joins an ambient transaction when one is in the context.
func (s *PostgresStore) q(ctx context.Context) querier {
	if txn, ok := tx.From(ctx); ok {
		return txn
	}
	return s.db
}

func (s *PostgresStore) Grant(ctx context.Context, id domain.TokenID, viewer domain.Address) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO view_permissions (token_id, viewer) VALUES ($1, $2)
		ON CONFLICT (token_id, viewer) DO NOTHING`,
		uint64(id), viewer.Bytes())
	if err != nil {
		return fmt.Errorf("grant view permission: %w", err)
	}
	return nil
}

func (s *PostgresStore) Revoke(ctx context.Context, id domain.TokenID, viewer domain.Address) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		DELETE FROM view_permissions WHERE token_id = $1 AND viewer = $2`,
		uint64(id), viewer.Bytes())
	if err != nil {
		return fmt.Errorf("revoke view permission: %w", err)
	}
	return nil
}

func (s *PostgresStore) Has(ctx context.Context, id domain.TokenID, viewer domain.Address) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM view_permissions WHERE token_id = $1 AND viewer = $2)`,
		uint64(id), viewer.Bytes()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check view permission: %w", err)
	}
	return exists, nil
}
