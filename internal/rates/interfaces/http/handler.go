package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tariffscope/internal/observability/metrics"
	"tariffscope/internal/rates/application"
	rates "tariffscope/internal/rates/domain"
	"tariffscope/internal/rates/interfaces"
)

// PlanHandler handles plan ingest, lookup and export routes.
type PlanHandler struct {
	service     *application.PlanIngestService
	repo        rates.PlanRepository
	checkpoints []int
	logger      *log.Logger
}

// NewPlanHandler constructs a handler.
func NewPlanHandler(service *application.PlanIngestService, repo rates.PlanRepository, checkpoints []int, logger *log.Logger) (*PlanHandler, error) {
	if service == nil {
		return nil, errors.New("plan handler: nil service")
	}
	if repo == nil {
		return nil, errors.New("plan handler: nil repository")
	}
	return &PlanHandler{service: service, repo: repo, checkpoints: checkpoints, logger: logger}, nil
}

// ServeHTTP handles routes under /api/v1/plans and /api/v1/exports.
func (h *PlanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == "/api/v1/plans/ingest" && r.Method == http.MethodPost {
		h.handleIngest(w, r)
		return
	}
	if path == "/api/v1/plans" && r.Method == http.MethodGet {
		h.handleList(w, r)
		return
	}
	if path == "/api/v1/exports/plans.xlsx" && r.Method == http.MethodGet {
		h.handleExportXLSX(w, r)
		return
	}
	if strings.HasPrefix(path, "/api/v1/plans/") {
		rest := strings.TrimPrefix(path, "/api/v1/plans/")
		h.handleByID(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *PlanHandler) handleIngest(w http.ResponseWriter, r *http.Request) {
	var input application.PlanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	record, err := h.service.Ingest(r.Context(), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(record)
}

func (h *PlanHandler) handleList(w http.ResponseWriter, r *http.Request) {
	zipCode := r.URL.Query().Get("zip")
	if zipCode == "" {
		http.Error(w, "zip required", http.StatusBadRequest)
		return
	}
	classification := r.URL.Query().Get("classification")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}
	plans, err := h.repo.ListByZip(r.Context(), zipCode, classification, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if plans == nil {
		plans = []rates.PlanRecord{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(plans)
}

func (h *PlanHandler) handleByID(w http.ResponseWriter, r *http.Request, rest string) {
	if rest == "" || r.Method != http.MethodGet {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	parts := strings.Split(rest, "/")
	id := parts[0]
	if len(parts) == 1 {
		h.handleGet(w, r, id)
		return
	}
	if len(parts) == 2 && parts[1] == "costsheet.pdf" {
		h.handleCostSheetPDF(w, r, id)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *PlanHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(record)
}

func (h *PlanHandler) handleCostSheetPDF(w http.ResponseWriter, r *http.Request, id string) {
	record, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	started := time.Now()
	data, err := interfaces.BuildCostSheetPDF(record, h.checkpoints)
	if err != nil {
		metrics.ObserveExport("pdf", metrics.ResultError, time.Since(started))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("pdf", metrics.ResultSuccess, time.Since(started))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="costsheet-`+id+`.pdf"`)
	_, _ = w.Write(data)
}

func (h *PlanHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	zipCode := r.URL.Query().Get("zip")
	if zipCode == "" {
		http.Error(w, "zip required", http.StatusBadRequest)
		return
	}
	plans, err := h.repo.ListByZip(r.Context(), zipCode, r.URL.Query().Get("classification"), 0)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	started := time.Now()
	data, err := interfaces.BuildComparisonXLSX(plans, h.checkpoints)
	if err != nil {
		metrics.ObserveExport("xlsx", metrics.ResultError, time.Since(started))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport("xlsx", metrics.ResultSuccess, time.Since(started))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="plans-`+zipCode+`.xlsx"`)
	_, _ = w.Write(data)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rates.ErrPlanNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, application.ErrNoUsableInput),
		errors.Is(err, application.ErrInvalidZipCode),
		errors.Is(err, application.ErrMissingIdentity):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
