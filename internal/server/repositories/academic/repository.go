// Package academic stores owner-scoped academic history entries.
package academic

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Academic, error)
	Create(ctx context.Context, rec *models.Academic) (*models.Academic, error)
	// Get locks the row when called inside a transaction.
	Get(ctx context.Context, id string) (*models.Academic, error)
	Update(ctx context.Context, rec *models.Academic) (*models.Academic, error)
	Delete(ctx context.Context, id string) error
}
