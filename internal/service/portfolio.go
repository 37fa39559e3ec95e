package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/model"
	"github.com/arkuznet/stockfolio/internal/repository"
)

// PortfolioService manages a user's tracked symbol set.
type PortfolioService interface {
	// Add inserts a symbol; adding a present symbol is a no-op.
	Add(ctx context.Context, ownerEmail, symbol string) (model.Portfolio, error)
	// Remove deletes a symbol; removing an absent symbol is a no-op success.
	Remove(ctx context.Context, ownerEmail, symbol string) (model.Portfolio, error)
	// List returns the set, empty if no portfolio exists yet.
	List(ctx context.Context, ownerEmail string) (model.Portfolio, error)
}

type PortfolioServiceImpl struct {
	repo repository.PortfolioRepository
}

// NewPortfolioService constructs a portfolio service.
func NewPortfolioService(repo repository.PortfolioRepository) *PortfolioServiceImpl {
	return &PortfolioServiceImpl{repo: repo}
}

// normalizeSymbol uppercases a ticker so APPL and appl are one entry.
func normalizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", errs.ErrValidation)
	}
	return symbol, nil
}

func (s *PortfolioServiceImpl) Add(ctx context.Context, ownerEmail, symbol string) (model.Portfolio, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return model.Portfolio{}, err
	}
	symbols, err := s.repo.AddSymbol(ctx, ownerEmail, symbol)
	if err != nil {
		return model.Portfolio{}, err
	}
	return model.Portfolio{OwnerEmail: ownerEmail, Symbols: symbols}, nil
}

func (s *PortfolioServiceImpl) Remove(ctx context.Context, ownerEmail, symbol string) (model.Portfolio, error) {
	symbol, err := normalizeSymbol(symbol)
	if err != nil {
		return model.Portfolio{}, err
	}
	symbols, err := s.repo.RemoveSymbol(ctx, ownerEmail, symbol)
	if err != nil {
		return model.Portfolio{}, err
	}
	return model.Portfolio{OwnerEmail: ownerEmail, Symbols: symbols}, nil
}

func (s *PortfolioServiceImpl) List(ctx context.Context, ownerEmail string) (model.Portfolio, error) {
	symbols, err := s.repo.ListSymbols(ctx, ownerEmail)
	if err != nil {
		return model.Portfolio{}, err
	}
	return model.Portfolio{OwnerEmail: ownerEmail, Symbols: symbols}, nil
}
