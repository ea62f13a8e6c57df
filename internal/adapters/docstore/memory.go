package docstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/simosh/storefront/internal/domain"
)

// Memory is the test backend. It serializes on save and deserializes on load
// so callers always get an isolated copy, same as the real stores.
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemory() *Memory { return &Memory{} }

func (s *Memory) Load(ctx context.Context) (*domain.Database, error) {
	s.mu.RLock()
	data := s.data
	s.mu.RUnlock()
	if data == nil {
		db := domain.DefaultDatabase()
		if err := s.Save(ctx, db); err != nil {
			return nil, err
		}
		return db, nil
	}
	var db domain.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, err
	}
	db.MergeDefaults()
	return &db, nil
}

func (s *Memory) Save(_ context.Context, db *domain.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
