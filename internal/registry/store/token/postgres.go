package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"cnft/internal/registry/models"
	"cnft/pkg/domain"
	"cnft/pkg/platform/sentinel"
	"cnft/pkg/platform/tx"
)

// PostgresStore persists token records in PostgreSQL.
//
// Id allocation reads MAX(id)+1 inside the insert transaction. The service
// serializes mutating calls, so two mints never race; the unique primary key
// would surface any violation as a conflict rather than a gap.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema returns the DDL the store expects. Applied by migrations in
// production and by integration tests directly.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS tokens (
	id         BIGINT PRIMARY KEY,
	owner      BYTEA NOT NULL,
	uri        TEXT NOT NULL,
	enc_rarity BYTEA NOT NULL,
	enc_power  BYTEA NOT NULL,
	enc_level  BYTEA NOT NULL,
	enc_value  BYTEA NOT NULL,
	minted_at  TIMESTAMPTZ NOT NULL
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

func (s *PostgresStore) Create(ctx context.Context, owner domain.Address, uri string, attrs models.EncryptedAttributes, mintedAt time.Time) (*models.Token, error) {
	var id uint64
	err := s.q(ctx).QueryRowContext(ctx, `
		INSERT INTO tokens (id, owner, uri, enc_rarity, enc_power, enc_level, enc_value, minted_at)
		SELECT COALESCE(MAX(id) + 1, 0), $1, $2, $3, $4, $5, $6, $7 FROM tokens
		RETURNING id`,
		owner.Bytes(), uri, []byte(attrs.Rarity), []byte(attrs.Power), []byte(attrs.Level), []byte(attrs.Value), mintedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}
	return &models.Token{
		ID:         domain.TokenID(id),
		Owner:      owner,
		URI:        uri,
		Attributes: attrs,
		MintedAt:   mintedAt,
	}, nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.TokenID) (*models.Token, error) {
	row := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, owner, uri, enc_rarity, enc_power, enc_level, enc_value, minted_at
		FROM tokens WHERE id = $1`, uint64(id))
	return scanToken(row)
}

func (s *PostgresStore) Exists(ctx context.Context, id domain.TokenID) (bool, error) {
	var exists bool
	err := s.q(ctx).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM tokens WHERE id = $1)`, uint64(id)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check token exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) SetOwner(ctx context.Context, id domain.TokenID, owner domain.Address) error {
	res, err := s.q(ctx).ExecContext(ctx, `UPDATE tokens SET owner = $1 WHERE id = $2`, owner.Bytes(), uint64(id))
	if err != nil {
		return fmt.Errorf("set token owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set token owner: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) NextID(ctx context.Context) (domain.TokenID, error) {
	var next uint64
	err := s.q(ctx).QueryRowContext(ctx, `SELECT COALESCE(MAX(id) + 1, 0) FROM tokens`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next token id: %w", err)
	}
	return domain.TokenID(next), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanToken(row rowScanner) (*models.Token, error) {
	var (
		id       uint64
		owner    []byte
		t        models.Token
		mintedAt time.Time
	)
	var rarity, power, level, value []byte
	err := row.Scan(&id, &owner, &t.URI, &rarity, &power, &level, &value, &mintedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan token: %w", err)
	}
	t.ID = domain.TokenID(id)
	t.Owner = domain.Address(commonBytes(owner))
	t.Attributes = models.EncryptedAttributes{Rarity: rarity, Power: power, Level: level, Value: value}
	t.MintedAt = mintedAt
	return &t, nil
}

func commonBytes(b []byte) (out [20]byte) {
	copy(out[:], b)
	return out
}
