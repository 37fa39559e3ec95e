package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/model"
)

type fakeGen struct {
	reply      string
	err        error
	lastPrompt string
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.reply, f.err
}

func TestInvestmentSummary_StripsMarkdown(t *testing.T) {
	t.Parallel()
	gen := &fakeGen{reply: "## Outlook\n**AAPL** looks steady.\n### Risks\nNone worth naming."}
	a := New(gen)

	got, err := a.InvestmentSummary(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("InvestmentSummary: %v", err)
	}
	if strings.Contains(got, "#") || strings.Contains(got, "**") {
		t.Fatalf("markdown left in: %q", got)
	}
	if !strings.Contains(got, "AAPL looks steady.") {
		t.Fatalf("content lost: %q", got)
	}
	if !strings.Contains(gen.lastPrompt, "AAPL") {
		t.Fatalf("symbol not templated into prompt")
	}
}

func TestInvestmentSummary_Failures(t *testing.T) {
	t.Parallel()
	a := New(&fakeGen{err: errors.New("quota")})
	if _, err := a.InvestmentSummary(context.Background(), "AAPL"); !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("want ErrUpstream, got %v", err)
	}

	a = New(&fakeGen{reply: "   \n  "})
	if _, err := a.InvestmentSummary(context.Background(), "AAPL"); !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("want ErrUpstream on empty summary, got %v", err)
	}

	if _, err := a.InvestmentSummary(context.Background(), ""); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestPopularSymbols_ExtractsJSONArray(t *testing.T) {
	t.Parallel()
	a := New(&fakeGen{reply: "Sure! Here you go:\n[\"AAPL\", \"MSFT\", \"NVDA\"]\nEnjoy."})

	got, err := a.PopularSymbols(context.Background())
	if err != nil {
		t.Fatalf("PopularSymbols: %v", err)
	}
	if len(got) != 3 || got[0] != "AAPL" || got[2] != "NVDA" {
		t.Fatalf("symbols=%v", got)
	}
}

func TestPopularSymbols_NoArrayIsEmpty(t *testing.T) {
	t.Parallel()
	a := New(&fakeGen{reply: "I cannot answer that."})

	got, err := a.PopularSymbols(context.Background())
	if err != nil {
		t.Fatalf("PopularSymbols: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %v", got)
	}
}

func TestRecommendations_MapsSignalsWithHoldFallback(t *testing.T) {
	t.Parallel()
	a := New(&fakeGen{reply: "buy\n\nSELL\n"})
	stocks := []model.Quote{
		{Symbol: "AAPL", Price: 187.44},
		{Symbol: "MSFT", Price: 420.10},
		{Symbol: "NVDA", Price: 120.00},
	}

	got, err := a.Recommendations(context.Background(), stocks)
	if err != nil {
		t.Fatalf("Recommendations: %v", err)
	}
	want := []string{"BUY", "SELL", "HOLD"}
	for i, rec := range got {
		if rec.Signal != want[i] || rec.Symbol != stocks[i].Symbol {
			t.Fatalf("rec[%d]=%+v want signal %s", i, rec, want[i])
		}
	}
}

func TestRecommendations_EmptyInput(t *testing.T) {
	t.Parallel()
	a := New(&fakeGen{})
	if _, err := a.Recommendations(context.Background(), nil); !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}
