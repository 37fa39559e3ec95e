package service

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/repository"
)

type fakePortfolios struct {
	sets map[string][]string
	err  error
}

var _ repository.PortfolioRepository = (*fakePortfolios)(nil)

func (f *fakePortfolios) AddSymbol(_ context.Context, owner, symbol string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sets == nil {
		f.sets = map[string][]string{}
	}
	if !slices.Contains(f.sets[owner], symbol) {
		f.sets[owner] = append(f.sets[owner], symbol)
	}
	return slices.Clone(f.sets[owner]), nil
}

func (f *fakePortfolios) RemoveSymbol(_ context.Context, owner, symbol string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sets[owner] = slices.DeleteFunc(slices.Clone(f.sets[owner]), func(s string) bool { return s == symbol })
	return slices.Clone(f.sets[owner]), nil
}

func (f *fakePortfolios) ListSymbols(_ context.Context, owner string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.sets[owner]), nil
}

func TestPortfolio_Add_IdempotentAndNormalized(t *testing.T) {
	t.Parallel()
	repo := &fakePortfolios{sets: map[string][]string{}}
	s := NewPortfolioService(repo)
	ctx := context.Background()

	p, err := s.Add(ctx, "alice@example.com", " aapl ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !slices.Equal(p.Symbols, []string{"AAPL"}) {
		t.Fatalf("symbols=%v", p.Symbols)
	}

	// Adding again leaves exactly one entry.
	p, err = s.Add(ctx, "alice@example.com", "AAPL")
	if err != nil {
		t.Fatalf("Add(2): %v", err)
	}
	if !slices.Equal(p.Symbols, []string{"AAPL"}) {
		t.Fatalf("duplicate crept in: %v", p.Symbols)
	}

	if _, err := s.Add(ctx, "alice@example.com", "  "); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation on blank symbol, got %v", err)
	}
}

func TestPortfolio_Remove_AbsentIsNoop(t *testing.T) {
	t.Parallel()
	repo := &fakePortfolios{sets: map[string][]string{"alice@example.com": {"AAPL", "MSFT"}}}
	s := NewPortfolioService(repo)
	ctx := context.Background()

	p, err := s.Remove(ctx, "alice@example.com", "msft")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !slices.Equal(p.Symbols, []string{"AAPL"}) {
		t.Fatalf("symbols=%v", p.Symbols)
	}

	// Removing a non-member reports success and leaves the set unchanged.
	p, err = s.Remove(ctx, "alice@example.com", "TSLA")
	if err != nil {
		t.Fatalf("Remove absent: %v", err)
	}
	if !slices.Equal(p.Symbols, []string{"AAPL"}) {
		t.Fatalf("set changed: %v", p.Symbols)
	}
}

func TestPortfolio_List_EmptyWithoutPortfolio(t *testing.T) {
	t.Parallel()
	s := NewPortfolioService(&fakePortfolios{sets: map[string][]string{}})

	p, err := s.List(context.Background(), "new@example.com")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(p.Symbols) != 0 {
		t.Fatalf("want empty, got %v", p.Symbols)
	}
}

func TestPortfolio_RepoErrorPropagates(t *testing.T) {
	t.Parallel()
	s := NewPortfolioService(&fakePortfolios{err: errors.New("db down")})

	if _, err := s.Add(context.Background(), "a@x.com", "AAPL"); err == nil {
		t.Fatalf("want repo error")
	}
}
