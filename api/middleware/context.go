package middleware

import (
	"context"

	"github.com/angelmondragon/storefront/internal/cart"
)

type contextKey string

const ctxCartRepo contextKey = "cart_repository"

// CartRepositoryFromContext returns the request-bound cart repository, or nil.
func CartRepositoryFromContext(ctx context.Context) *cart.Repository {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxCartRepo).(*cart.Repository); ok {
		return v
	}
	return nil
}

// WithCartRepository injects the cart repository into the context for downstream handlers.
func WithCartRepository(ctx context.Context, repo *cart.Repository) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCartRepo, repo)
}
