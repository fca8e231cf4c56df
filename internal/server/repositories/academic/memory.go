package academic

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]models.Academic
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]models.Academic)}
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Academic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Academic, 0)
	for _, rec := range r.records {
		if rec.Owner == ownerID {
			rec := rec
			result = append(result, &rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, rec *models.Academic) (*models.Academic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID] = *rec
	return rec, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Academic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &rec, nil
}

func (r *MemoryRepository) Update(ctx context.Context, rec *models.Academic) (*models.Academic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[rec.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Degree = rec.Degree
	stored.Institution = rec.Institution
	stored.Year = rec.Year
	stored.Description = rec.Description
	stored.UpdatedAt = time.Now().UTC()
	r.records[rec.ID] = stored
	return &stored, nil
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
