package httpapi

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type contextKey string

const accountContextKey contextKey = "account"

func withAccount(ctx context.Context, a *models.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, a)
}

// AccountFromContext returns the account attached by RequireAuth, or nil.
func AccountFromContext(ctx context.Context) *models.Account {
	a, _ := ctx.Value(accountContextKey).(*models.Account)
	return a
}
