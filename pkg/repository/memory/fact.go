package memory

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/wayfinder/pkg/domain/model"
	"github.com/secmon-lab/wayfinder/pkg/repository/record"
)

type factRepository struct {
	mu      sync.RWMutex
	entries map[string][]*model.FactEntry
}

func newFactRepository() *factRepository {
	return &factRepository{
		entries: make(map[string][]*model.FactEntry),
	}
}

func (r *factRepository) Append(ctx context.Context, userID string, entry *model.FactEntry) (*model.FactEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := record.PrepareFact(userID, entry, time.Now())
	r.entries[userID] = append(r.entries[userID], created)
	return created.Copy(), nil
}

func (r *factRepository) List(ctx context.Context, userID string) ([]*model.FactEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket := r.entries[userID]
	result := make([]*model.FactEntry, len(bucket))
	for i, e := range bucket {
		result[i] = e.Copy()
	}
	return result, nil
}
