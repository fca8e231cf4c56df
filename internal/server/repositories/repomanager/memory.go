package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/folio/internal/server/repositories/academic"
	"github.com/dmitrijs2005/folio/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/folio/internal/server/repositories/messages"
	"github.com/dmitrijs2005/folio/internal/server/repositories/projects"
)

// MemoryRepositoryManager keeps everything in process memory. WithTx
// serializes transactional work; it has no rollback.
type MemoryRepositoryManager struct {
	txMu     *sync.Mutex
	accounts *accounts.MemoryRepository
	academic *academic.MemoryRepository
	projects *projects.MemoryRepository
	messages *messages.MemoryRepository
	inTx     bool
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		txMu:     &sync.Mutex{},
		accounts: accounts.NewMemoryRepository(),
		academic: academic.NewMemoryRepository(),
		projects: projects.NewMemoryRepository(),
		messages: messages.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Accounts() accounts.Repository { return m.accounts }

// AccountStore exposes the concrete store, which also supports Delete.
func (m *MemoryRepositoryManager) AccountStore() *accounts.MemoryRepository { return m.accounts }

func (m *MemoryRepositoryManager) Academic() academic.Repository { return m.academic }

func (m *MemoryRepositoryManager) Projects() projects.Repository { return m.projects }

func (m *MemoryRepositoryManager) Messages() messages.Repository { return m.messages }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, m RepositoryManager) error) error {
	if m.inTx {
		return fn(ctx, m)
	}
	m.txMu.Lock()
	defer m.txMu.Unlock()

	tx := *m
	tx.inTx = true
	return fn(ctx, &tx)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
