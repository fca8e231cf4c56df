package messages

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/folio/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg.ID = uuid.NewString()
	msg.CreatedAt = time.Now().UTC()
	r.messages = append(r.messages, *msg)
	return msg, nil
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Message, 0, len(r.messages))
	for i := len(r.messages) - 1; i >= 0; i-- {
		m := r.messages[i]
		result = append(result, &m)
	}
	return result, nil
}
