// Package messages stores contact-form submissions.
package messages

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	// List returns submissions newest first.
	List(ctx context.Context) ([]*models.Message, error)
}
