package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	rates "tariffscope/internal/rates/domain"
)

// PlanRepository persists plan records. The rate model and the per-checkpoint
// breakdowns are stored as JSON payload columns; classifications live in a
// side table so they can be filtered on.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository constructs a repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Save upserts a record and replaces its classifications.
func (r *PlanRepository) Save(ctx context.Context, record *rates.PlanRecord) error {
	if r == nil || r.db == nil {
		return errors.New("plan repo: nil db")
	}
	if record == nil {
		return rates.ErrNilRecord
	}

	modelJSON, err := json.Marshal(record.RateModel)
	if err != nil {
		return err
	}
	costsJSON, err := json.Marshal(record.Costs)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO plans (
	id, name, provider, zip_code, contract_months,
	rate_model, costs, document_url, parsed, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	provider = EXCLUDED.provider,
	zip_code = EXCLUDED.zip_code,
	contract_months = EXCLUDED.contract_months,
	rate_model = EXCLUDED.rate_model,
	costs = EXCLUDED.costs,
	document_url = EXCLUDED.document_url,
	parsed = EXCLUDED.parsed,
	updated_at = EXCLUDED.updated_at`,
		record.ID, record.Name, record.Provider, record.ZipCode, record.ContractMonths,
		modelJSON, costsJSON, record.DocumentURL, record.Parsed, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM plan_classifications WHERE plan_id = $1`, record.ID); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, classification := range record.Classifications {
		_, err := tx.ExecContext(ctx, `
INSERT INTO plan_classifications (plan_id, classification) VALUES ($1,$2)`,
			record.ID, classification)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetByID loads one record with its classifications.
func (r *PlanRepository) GetByID(ctx context.Context, id string) (*rates.PlanRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("plan repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, provider, zip_code, contract_months,
	rate_model, costs, document_url, parsed, created_at, updated_at
FROM plans
WHERE id = $1
LIMIT 1`, id)
	record, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, rates.ErrPlanNotFound
	}
	if err := r.loadClassifications(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListByZip returns records for a zip ordered by name, optionally filtered
// by classification.
func (r *PlanRepository) ListByZip(ctx context.Context, zipCode, classification string, limit int) ([]rates.PlanRecord, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("plan repo: nil db")
	}
	query := `
SELECT id, name, provider, zip_code, contract_months,
	rate_model, costs, document_url, parsed, created_at, updated_at
FROM plans
WHERE zip_code = $1
ORDER BY name ASC`
	args := []any{zipCode}
	if classification != "" {
		query = `
SELECT p.id, p.name, p.provider, p.zip_code, p.contract_months,
	p.rate_model, p.costs, p.document_url, p.parsed, p.created_at, p.updated_at
FROM plans p
JOIN plan_classifications c ON c.plan_id = p.id
WHERE p.zip_code = $1 AND c.classification = $2
ORDER BY p.name ASC`
		args = append(args, classification)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []rates.PlanRecord
	for rows.Next() {
		record, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		if record == nil {
			continue
		}
		if err := r.loadClassifications(ctx, record); err != nil {
			return nil, err
		}
		result = append(result, *record)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PlanRepository) loadClassifications(ctx context.Context, record *rates.PlanRecord) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT classification
FROM plan_classifications
WHERE plan_id = $1
ORDER BY classification ASC`, record.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var classification string
		if err := rows.Scan(&classification); err != nil {
			return err
		}
		record.Classifications = append(record.Classifications, classification)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*rates.PlanRecord, error) {
	var record rates.PlanRecord
	var contractMonths sql.NullInt64
	var modelJSON, costsJSON []byte
	var documentURL sql.NullString
	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Provider,
		&record.ZipCode,
		&contractMonths,
		&modelJSON,
		&costsJSON,
		&documentURL,
		&record.Parsed,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if contractMonths.Valid {
		months := int(contractMonths.Int64)
		record.ContractMonths = &months
	}
	if documentURL.Valid {
		record.DocumentURL = documentURL.String
	}
	if err := json.Unmarshal(modelJSON, &record.RateModel); err != nil {
		return nil, err
	}
	if len(costsJSON) > 0 {
		if err := json.Unmarshal(costsJSON, &record.Costs); err != nil {
			return nil, err
		}
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()
	return &record, nil
}
