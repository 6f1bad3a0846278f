package treasury

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"

	"cnft/pkg/platform/tx"
)

// PostgresStore keeps the treasury balance in a single-row table. NUMERIC
// holds wei amounts exactly; values travel as decimal strings.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema returns the DDL the store expects. The singleton row is created
// lazily by the first credit.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS treasury (
	singleton BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
	balance   NUMERIC(78, 0) NOT NULL DEFAULT 0
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

func (s *PostgresStore) Credit(ctx context.Context, amount *big.Int) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO treasury (singleton, balance) VALUES (TRUE, $1::NUMERIC)
		ON CONFLICT (singleton) DO UPDATE SET balance = treasury.balance + EXCLUDED.balance`,
		amount.String())
	if err != nil {
		return fmt.Errorf("credit treasury: %w", err)
	}
	return nil
}

func (s *PostgresStore) Balance(ctx context.Context) (*big.Int, error) {
	var raw string
	err := s.q(ctx).QueryRowContext(ctx, `SELECT balance::TEXT FROM treasury`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read treasury balance: %w", err)
	}
	return parseNumeric(raw)
}

// WithdrawAll zeroes the balance and returns the drained amount. The self-join
// makes the read and the reset one atomic statement, so it is safe both
// standalone and inside an ambient transaction.
func (s *PostgresStore) WithdrawAll(ctx context.Context) (*big.Int, error) {
	var raw string
	err := s.q(ctx).QueryRowContext(ctx, `
		UPDATE treasury t SET balance = 0
		FROM treasury old WHERE t.singleton = old.singleton
		RETURNING old.balance::TEXT`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, fmt.Errorf("withdraw treasury: %w", err)
	}
	return parseNumeric(raw)
}

func parseNumeric(raw string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("malformed treasury balance %q", raw)
	}
	return v, nil
}
