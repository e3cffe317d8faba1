// Package application orchestrates the plan pipeline: extraction from
// document text (or mapping from a structured source record), cost
// normalization at every checkpoint, classification, and persistence.
package application

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"tariffscope/internal/observability/metrics"
	"tariffscope/internal/rates/classify"
	rates "tariffscope/internal/rates/domain"
	"tariffscope/internal/rates/extract"
	"tariffscope/internal/rates/pricing"
)

var (
	// ErrNoUsableInput is returned when a plan carries neither document text
	// nor a source record.
	ErrNoUsableInput = errors.New("rates: no document text or source record")
	// ErrInvalidZipCode is returned for a zip code that is not five digits.
	ErrInvalidZipCode = errors.New("rates: zip code must be 5 digits")
	// ErrMissingIdentity is returned when name or provider is empty.
	ErrMissingIdentity = errors.New("rates: plan name and provider required")
)

// PlanInput is one plan to ingest. DocumentText is the plain text already
// extracted from the disclosure document; Source is the structured listing
// row, used in place of extraction when the collector has one.
type PlanInput struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Provider       string        `json:"provider"`
	ZipCode        string        `json:"zip_code"`
	ContractMonths *int          `json:"contract_length_months"`
	DocumentText   string        `json:"document_text"`
	DocumentURL    string        `json:"efl_url"`
	Source         *SourceRecord `json:"source"`
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// PlanIngestService runs the extract -> normalize -> classify -> persist
// pipeline. Safe for concurrent use; one goroutine per plan is fine.
type PlanIngestService struct {
	repo       rates.PlanRepository
	normalizer *pricing.Normalizer
	deriver    *classify.Deriver
	clock      Clock
	logger     *log.Logger
}

// NewPlanIngestService constructs the service.
func NewPlanIngestService(
	repo rates.PlanRepository,
	normalizer *pricing.Normalizer,
	deriver *classify.Deriver,
	clock Clock,
	logger *log.Logger,
) (*PlanIngestService, error) {
	if repo == nil {
		return nil, errors.New("plan ingest service: nil repository")
	}
	if normalizer == nil {
		return nil, errors.New("plan ingest service: nil normalizer")
	}
	if deriver == nil {
		return nil, errors.New("plan ingest service: nil deriver")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &PlanIngestService{
		repo:       repo,
		normalizer: normalizer,
		deriver:    deriver,
		clock:      clock,
		logger:     logger,
	}, nil
}

// Ingest builds and stores the plan record for one input. A structured source
// record wins over document text since its fields map directly onto the rate
// model; a plan with neither is rejected so the caller can skip it.
func (s *PlanIngestService) Ingest(ctx context.Context, input PlanInput) (*rates.PlanRecord, error) {
	started := s.clock.Now()

	if input.Name == "" || input.Provider == "" {
		return nil, ErrMissingIdentity
	}
	if !validZipCode(input.ZipCode) {
		return nil, ErrInvalidZipCode
	}

	var model rates.RateModel
	var parsed bool
	inputKind := metrics.InputKindDocument
	switch {
	case input.Source != nil:
		model = RateModelFromSource(*input.Source)
		inputKind = metrics.InputKindSource
	case input.DocumentText != "":
		model = extract.Extract(input.DocumentText)
		parsed = true
	default:
		metrics.ObserveIngest(metrics.InputKindDocument, metrics.ResultError, s.clock.Now().Sub(started))
		return nil, ErrNoUsableInput
	}

	record := &rates.PlanRecord{
		ID:              input.ID,
		Name:            input.Name,
		Provider:        input.Provider,
		ZipCode:         input.ZipCode,
		ContractMonths:  input.ContractMonths,
		RateModel:       model,
		Costs:           s.normalizer.AllCheckpoints(model),
		Classifications: s.deriver.Derive(model, hintsFor(input)),
		DocumentURL:     input.DocumentURL,
		Parsed:          parsed,
		CreatedAt:       started,
		UpdatedAt:       started,
	}
	if record.ID == "" {
		record.ID = PlanID(input.Provider, input.Name, input.ZipCode)
	}

	if err := s.repo.Save(ctx, record); err != nil {
		metrics.ObserveIngest(inputKind, metrics.ResultError, s.clock.Now().Sub(started))
		return nil, err
	}

	metrics.ObserveIngest(inputKind, metrics.ResultSuccess, s.clock.Now().Sub(started))
	if s.logger != nil {
		s.logger.Printf("plan ingested: id=%s provider=%q parsed=%t tags=%d", record.ID, record.Provider, record.Parsed, len(record.Classifications))
	}
	return record, nil
}

func hintsFor(input PlanInput) *classify.Hints {
	hints := classify.Hints{Name: input.Name}
	if input.Source != nil {
		hints.SpecialTerms = input.Source.SpecialTerms
		hints.Prepaid = input.Source.Prepaid
		hints.NewCustomerOnly = input.Source.NewCustomerOnly
	}
	return &hints
}

// PlanID derives a stable plan identifier from provider, name and zip.
func PlanID(provider, name, zipCode string) string {
	content := strings.ToLower(provider + "_" + name + "_" + zipCode)
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])[:16]
}

func validZipCode(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for _, r := range zip {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
