package repomanager

import (
	"context"

	"github.com/dmitrijs2005/folio/internal/server/repositories/academic"
	"github.com/dmitrijs2005/folio/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/folio/internal/server/repositories/messages"
	"github.com/dmitrijs2005/folio/internal/server/repositories/projects"
)

// RepositoryManager vends the repositories a service needs. Inside WithTx
// the manager passed to fn returns repositories bound to one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Academic() academic.Repository
	Projects() projects.Repository
	Messages() messages.Repository
	WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error
	Close() error
}
