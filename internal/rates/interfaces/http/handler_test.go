package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tariffscope/internal/rates/application"
	"tariffscope/internal/rates/classify"
	rates "tariffscope/internal/rates/domain"
	"tariffscope/internal/rates/infrastructure/memory"
	"tariffscope/internal/rates/pricing"
)

func newTestHandler(t *testing.T) (*PlanHandler, *memory.PlanRepository) {
	t.Helper()
	repo := memory.NewPlanRepository()
	cfg := pricing.DefaultConfig()
	service, err := application.NewPlanIngestService(
		repo,
		pricing.NewNormalizer(cfg),
		classify.NewDeriver(cfg.HighRenewablePercent),
		application.SystemClock{},
		nil,
	)
	if err != nil {
		t.Fatalf("NewPlanIngestService: %v", err)
	}
	handler, err := NewPlanHandler(service, repo, cfg.Checkpoints, nil)
	if err != nil {
		t.Fatalf("NewPlanHandler: %v", err)
	}
	return handler, repo
}

func ingestBody() *bytes.Buffer {
	payload := map[string]any{
		"name":          "Saver 12",
		"provider":      "SparkCo Energy",
		"zip_code":      "75001",
		"document_text": "Base Charge: $9.95\nEnergy Charge: $0.095 per kWh\nThis product is 100% renewable.",
	}
	body, _ := json.Marshal(payload)
	return bytes.NewBuffer(body)
}

func TestHandleIngest(t *testing.T) {
	handler, repo := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/ingest", ingestBody())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}
	var record rates.PlanRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.ID == "" || !record.Parsed {
		t.Errorf("record = %+v, want parsed record with id", record)
	}
	if _, err := repo.GetByID(context.Background(), record.ID); err != nil {
		t.Errorf("record not persisted: %v", err)
	}
}

func TestHandleIngestBadRequests(t *testing.T) {
	handler, _ := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing identity", `{"zip_code":"75001","document_text":"x"}`},
		{"bad zip", `{"name":"N","provider":"P","zip_code":"abc","document_text":"x"}`},
		{"no usable input", `{"name":"N","provider":"P","zip_code":"75001"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/ingest", strings.NewReader(tc.body))
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, resp.Code)
		}
	}
}

func TestHandleListByZip(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plans/ingest", ingestBody())
	handler.ServeHTTP(httptest.NewRecorder(), req)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans?zip=75001", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var plans []rates.PlanRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &plans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(plans) != 1 {
		t.Errorf("plans = %+v, want 1", plans)
	}

	// Classification filter narrows the result.
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans?zip=75001&classification=prepaid", nil))
	if err := json.Unmarshal(resp.Body.Bytes(), &plans); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(plans) != 0 {
		t.Errorf("plans = %+v, want none tagged prepaid", plans)
	}
}

func TestHandleListRequiresZip(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans?zip=75001&limit=-1", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for negative limit", resp.Code)
	}
}

func TestHandleGetByID(t *testing.T) {
	handler, repo := newTestHandler(t)

	record := &rates.PlanRecord{ID: "plan-1", Name: "Stored", Provider: "P", ZipCode: "75001"}
	if err := repo.Save(context.Background(), record); err != nil {
		t.Fatal(err)
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans/plan-1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	var got rates.PlanRecord
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Name != "Stored" {
		t.Errorf("got = %+v", got)
	}
}

func TestHandleGetByIDNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans/nope", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}

func TestHandleCostSheetPDF(t *testing.T) {
	handler, _ := newTestHandler(t)

	ingest := httptest.NewRecorder()
	handler.ServeHTTP(ingest, httptest.NewRequest(http.MethodPost, "/api/v1/plans/ingest", ingestBody()))
	var record rates.PlanRecord
	if err := json.Unmarshal(ingest.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode ingest response: %v", err)
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/plans/"+record.ID+"/costsheet.pdf", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Error("response body is not a PDF")
	}
}

func TestHandleExportXLSX(t *testing.T) {
	handler, _ := newTestHandler(t)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/plans/ingest", ingestBody()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/exports/plans.xlsx?zip=75001", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type = %q", ct)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("PK")) {
		t.Error("response body is not an xlsx archive")
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/exports/plans.xlsx", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without zip", resp.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	handler, _ := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/plans", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.Code)
	}
}
