package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// PortfolioRepo implements PortfolioRepository using PostgreSQL. Each
// portfolio is one row keyed by owner email with a text[] symbol set;
// add and remove are single statements, so concurrent updates to the
// same portfolio serialize on the row without application-level locking.
type PortfolioRepo struct{ db *DB }

// NewPortfolioRepo constructs a portfolio repository.
func NewPortfolioRepo(db *DB) *PortfolioRepo { return &PortfolioRepo{db: db} }

// AddSymbol upserts the portfolio row and appends symbol only if absent.
func (r *PortfolioRepo) AddSymbol(ctx context.Context, ownerEmail, symbol string) ([]string, error) {
	const q = `
INSERT INTO portfolios (owner_email, symbols)
VALUES ($1, ARRAY[$2::text])
ON CONFLICT (owner_email) DO UPDATE
SET symbols = CASE
  WHEN $2 = ANY (portfolios.symbols) THEN portfolios.symbols
  ELSE array_append(portfolios.symbols, $2)
END
RETURNING symbols`
	var symbols []string
	if err := r.db.Pool.QueryRow(ctx, q, ownerEmail, symbol).Scan(&symbols); err != nil {
		return nil, err
	}
	return symbols, nil
}

// RemoveSymbol removes symbol from the set; no row or absent symbol is a
// no-op success.
func (r *PortfolioRepo) RemoveSymbol(ctx context.Context, ownerEmail, symbol string) ([]string, error) {
	const q = `
UPDATE portfolios SET symbols = array_remove(symbols, $2)
WHERE owner_email = $1
RETURNING symbols`
	var symbols []string
	err := r.db.Pool.QueryRow(ctx, q, ownerEmail, symbol).Scan(&symbols)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListSymbols returns the owner's set, empty if no portfolio exists yet.
func (r *PortfolioRepo) ListSymbols(ctx context.Context, ownerEmail string) ([]string, error) {
	const q = `SELECT symbols FROM portfolios WHERE owner_email = $1`
	var symbols []string
	err := r.db.Pool.QueryRow(ctx, q, ownerEmail).Scan(&symbols)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return symbols, nil
}
