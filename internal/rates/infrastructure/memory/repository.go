package memory

import (
	"context"
	"sync"

	rates "tariffscope/internal/rates/domain"
)

// PlanRepository is an in-memory plan store for tests and DB-less runs.
type PlanRepository struct {
	mu   sync.RWMutex
	data map[string]*rates.PlanRecord
}

// NewPlanRepository constructs a repository.
func NewPlanRepository() *PlanRepository {
	return &PlanRepository{data: make(map[string]*rates.PlanRecord)}
}

// Save stores a detached copy of the record (overwrites existing).
func (r *PlanRepository) Save(ctx context.Context, record *rates.PlanRecord) error {
	_ = ctx
	if record == nil {
		return rates.ErrNilRecord
	}
	copy := record.Clone()
	r.mu.Lock()
	r.data[record.ID] = copy
	r.mu.Unlock()
	return nil
}

// GetByID loads one record.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*rates.PlanRecord, error) {
	_ = ctx
	r.mu.RLock()
	record := r.data[id]
	r.mu.RUnlock()
	if record == nil {
		return nil, rates.ErrPlanNotFound
	}
	return record.Clone(), nil
}

// ListByZip returns records for a zip, optionally filtered by classification.
func (r *PlanRepository) ListByZip(ctx context.Context, zipCode, classification string, limit int) ([]rates.PlanRecord, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []rates.PlanRecord
	for _, record := range r.data {
		if record.ZipCode != zipCode {
			continue
		}
		if classification != "" && !hasClassification(record, classification) {
			continue
		}
		result = append(result, *record.Clone())
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

func hasClassification(record *rates.PlanRecord, classification string) bool {
	for _, tag := range record.Classifications {
		if tag == classification {
			return true
		}
	}
	return false
}
