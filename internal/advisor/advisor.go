// Package advisor produces AI-generated investment summaries, popular-symbol
// lists and trading signals by prompting a generative language model and
// post-processing its text output.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/model"
)

// Generator answers a single text prompt. Implemented by the Gemini-backed
// generator in this package; tests use a fake.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Advisor templates prompts and reshapes model output into domain values.
type Advisor struct {
	gen Generator
}

// New constructs an advisor over the given generator.
func New(gen Generator) *Advisor { return &Advisor{gen: gen} }

const summaryPrompt = `You are a financial analyst. Provide a concise, professional investment summary for the stock symbol %s.
Include the following:
- Recent price trends and key recent events impacting the stock
- A reasoned price outlook for the next 1 month with possible risks
- Clear buy, hold, or sell recommendation with rationale
- Suggested portfolio allocation percentage based on risk profile
Use precise language, avoid jargon, and keep it engaging for investors seeking actionable insights.`

var (
	mdHeader = regexp.MustCompile(`(?m)^\s*#+\s*`)
	mdBold   = regexp.MustCompile(`\*\*`)
	jsonList = regexp.MustCompile(`\[[^\]]*\]`)
)

// InvestmentSummary returns a plain-text summary for symbol with the model's
// markdown decoration stripped.
func (a *Advisor) InvestmentSummary(ctx context.Context, symbol string) (string, error) {
	if symbol == "" {
		return "", fmt.Errorf("%w: symbol is required", errs.ErrValidation)
	}
	raw, err := a.gen.Generate(ctx, fmt.Sprintf(summaryPrompt, symbol))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	clean := strings.TrimSpace(mdBold.ReplaceAllString(mdHeader.ReplaceAllString(raw, ""), ""))
	if clean == "" {
		return "", fmt.Errorf("%w: empty summary", errs.ErrUpstream)
	}
	return clean, nil
}

const popularPrompt = `You are a financial assistant. List 10 popular or trending stock symbols that retail investors are currently interested in.
Return only a JSON array like ["AAPL", "MSFT", "GOOGL", ...] with no explanation or extra text.`

// PopularSymbols extracts a JSON array of tickers from the model's reply.
func (a *Advisor) PopularSymbols(ctx context.Context) ([]string, error) {
	raw, err := a.gen.Generate(ctx, popularPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	match := jsonList.FindString(raw)
	if match == "" {
		return []string{}, nil
	}
	var symbols []string
	if err := json.Unmarshal([]byte(match), &symbols); err != nil {
		return nil, fmt.Errorf("%w: bad symbol list: %v", errs.ErrUpstream, err)
	}
	return symbols, nil
}

// Recommendations asks for one BUY/HOLD/SELL word per quoted stock. A stock
// whose answer cannot be read falls back to HOLD.
func (a *Advisor) Recommendations(ctx context.Context, stocks []model.Quote) ([]model.Recommendation, error) {
	if len(stocks) == 0 {
		return nil, fmt.Errorf("%w: stocks are required", errs.ErrValidation)
	}
	var b strings.Builder
	for _, s := range stocks {
		fmt.Fprintf(&b, "You are a financial advisor. Given the stock symbol %q and its current price $%.2f, respond with exactly one word: BUY, HOLD, or SELL.\n", s.Symbol, s.Price)
	}
	raw, err := a.gen.Generate(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}

	var signals []string
	for _, line := range strings.Split(raw, "\n") {
		switch s := strings.ToUpper(strings.TrimSpace(line)); s {
		case "BUY", "HOLD", "SELL":
			signals = append(signals, s)
		}
	}

	out := make([]model.Recommendation, len(stocks))
	for i, s := range stocks {
		signal := "HOLD"
		if i < len(signals) {
			signal = signals[i]
		}
		out[i] = model.Recommendation{Symbol: s.Symbol, Price: s.Price, Signal: signal}
	}
	return out, nil
}
