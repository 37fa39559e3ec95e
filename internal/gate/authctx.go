package gate

import (
	"context"

	"github.com/arkuznet/stockfolio/internal/model"
)

type ctxKey string

const claimsKey ctxKey = "sf.claims"

// WithClaims stores verified identity claims in context.
func WithClaims(ctx context.Context, c model.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromCtx fetches verified identity claims from context.
func ClaimsFromCtx(ctx context.Context) (model.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return model.Claims{}, false
	}
	c, ok := v.(model.Claims)
	return c, ok
}
