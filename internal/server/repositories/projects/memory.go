package projects

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]models.Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]models.Project)}
}

func clone(p models.Project) *models.Project {
	p.Technologies = slices.Clone(p.Technologies)
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	return &p
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Project, 0)
	for _, rec := range r.records {
		if rec.Owner == ownerID {
			result = append(result, clone(rec))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, rec *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = *clone(*rec)
	return clone(*rec), nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(rec), nil
}

func (r *MemoryRepository) Update(ctx context.Context, rec *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Title = rec.Title
	stored.Description = rec.Description
	stored.Link = rec.Link
	stored.Technologies = slices.Clone(rec.Technologies)
	stored.Image = rec.Image
	stored.UpdatedAt = time.Now().UTC()
	r.records[rec.ID] = stored
	return clone(stored), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.records, id)
	return nil
}
