// Package market adapts external market-data providers: latest quotes and
// daily closing-price history. Both calls are thin proxies with light
// reshaping; provider failures surface as errs.ErrUpstream.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/arkuznet/stockfolio/internal/errs"
	"github.com/arkuznet/stockfolio/internal/model"
)

const (
	defaultQuoteURL   = "https://www.alphavantage.co/query"
	defaultHistoryURL = "https://api.twelvedata.com/time_series"
	historyDays       = 30
)

// Client fetches quotes and history through an injectable http.Client.
type Client struct {
	http       *http.Client
	quoteURL   string
	historyURL string
	quoteKey   string
	historyKey string
}

// Option adjusts a Client, mainly for tests.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithQuoteURL overrides the quote provider endpoint.
func WithQuoteURL(u string) Option { return func(c *Client) { c.quoteURL = u } }

// WithHistoryURL overrides the history provider endpoint.
func WithHistoryURL(u string) Option { return func(c *Client) { c.historyURL = u } }

// NewClient constructs a market-data client with the given provider API keys.
func NewClient(quoteKey, historyKey string, opts ...Option) *Client {
	c := &Client{
		http:       http.DefaultClient,
		quoteURL:   defaultQuoteURL,
		historyURL: defaultHistoryURL,
		quoteKey:   quoteKey,
		historyKey: historyKey,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// jwget performs an HTTP GET and unmarshals the JSON response body into data.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", errs.ErrUpstream, resp.Request.URL.Host, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrUpstream, err)
	}
	if err := json.Unmarshal(body, data); err != nil {
		return fmt.Errorf("%w: bad payload: %v", errs.ErrUpstream, err)
	}
	return nil
}

// Quote returns the latest price for one symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	q := url.Values{}
	q.Set("function", "GLOBAL_QUOTE")
	q.Set("symbol", symbol)
	q.Set("apikey", c.quoteKey)

	var payload struct {
		GlobalQuote map[string]string `json:"Global Quote"`
		Note        string            `json:"Note"`
	}
	if err := c.jwget(ctx, c.quoteURL+"?"+q.Encode(), &payload); err != nil {
		return model.Quote{}, err
	}
	if payload.Note != "" {
		// the provider reports rate limiting in-band with a 200
		return model.Quote{}, fmt.Errorf("%w: provider rate limit", errs.ErrUpstream)
	}
	raw, ok := payload.GlobalQuote["05. price"]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: no price for %s", errs.ErrUpstream, symbol)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Quote{}, fmt.Errorf("%w: bad price %q", errs.ErrUpstream, raw)
	}
	return model.Quote{Symbol: symbol, Price: price}, nil
}

// Quotes fetches latest prices for several symbols sequentially, stopping
// at the first provider failure.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]model.Quote, error) {
	out := make([]model.Quote, 0, len(symbols))
	for _, s := range symbols {
		q, err := c.Quote(ctx, s)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// History returns up to 30 daily closing prices for symbol, oldest first.
func (c *Client) History(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(historyDays))
	q.Set("format", "json")
	q.Set("apikey", c.historyKey)

	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Values  []struct {
			Datetime string `json:"datetime"`
			Close    string `json:"close"`
		} `json:"values"`
	}
	if err := c.jwget(ctx, c.historyURL+"?"+q.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Status == "error" {
		return nil, fmt.Errorf("%w: %s", errs.ErrUpstream, payload.Message)
	}
	if payload.Values == nil {
		return nil, fmt.Errorf("%w: no series for %s", errs.ErrUpstream, symbol)
	}

	// Provider returns newest first; callers chart oldest first.
	out := make([]model.PricePoint, 0, len(payload.Values))
	for i := len(payload.Values) - 1; i >= 0; i-- {
		v := payload.Values[i]
		price, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad close %q", errs.ErrUpstream, v.Close)
		}
		out = append(out, model.PricePoint{Date: v.Datetime, Price: price})
	}
	return out, nil
}
