package repository

import "context"

// PortfolioRepository provides set-semantics access to per-user symbol lists.
// Add and Remove must be atomic at the storage layer so concurrent updates
// to the same portfolio never lose writes.
type PortfolioRepository interface {
	// AddSymbol inserts symbol into the owner's set, creating the portfolio
	// lazily. Adding a present symbol is a no-op. Returns the resulting set.
	AddSymbol(ctx context.Context, ownerEmail, symbol string) ([]string, error)
	// RemoveSymbol removes symbol from the owner's set. Removing an absent
	// symbol is a no-op success. Returns the resulting set.
	RemoveSymbol(ctx context.Context, ownerEmail, symbol string) ([]string, error)
	// ListSymbols returns the owner's set, empty if no portfolio exists.
	ListSymbols(ctx context.Context, ownerEmail string) ([]string, error)
}
