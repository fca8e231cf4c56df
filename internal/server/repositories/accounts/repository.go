// Package accounts is the Credential Store: persisted identity records.
//
// Implementations must enforce case-insensitive email uniqueness at Create
// time and report a violation as common.ErrDuplicateAccount; lookups that
// match nothing return common.ErrorNotFound.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.Account, error)
}
