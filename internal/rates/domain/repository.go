package rates

import "context"

// PlanRepository persists plan records.
type PlanRepository interface {
	Save(ctx context.Context, record *PlanRecord) error
	GetByID(ctx context.Context, id string) (*PlanRecord, error)
	ListByZip(ctx context.Context, zipCode, classification string, limit int) ([]PlanRecord, error)
}
