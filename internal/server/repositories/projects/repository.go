// Package projects stores owner-scoped portfolio project entries.
package projects

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	Create(ctx context.Context, rec *models.Project) (*models.Project, error)
	// Get locks the row when called inside a transaction.
	Get(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, rec *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id string) error
}
