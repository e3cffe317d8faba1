package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"tariffscope/internal/observability/metrics"
	"tariffscope/internal/rates/application"
	"tariffscope/internal/rates/classify"
	planpostgres "tariffscope/internal/rates/infrastructure/postgres"
	planhttp "tariffscope/internal/rates/interfaces/http"
	"tariffscope/internal/rates/pricing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init()

	pricingCfg, err := pricing.LoadConfig()
	if err != nil {
		logger.Fatalf("pricing config error: %v", err)
	}
	normalizer := pricing.NewNormalizer(pricingCfg)
	deriver := classify.NewDeriver(pricingCfg.HighRenewablePercent)

	planRepo := planpostgres.NewPlanRepository(db)
	ingestService, err := application.NewPlanIngestService(planRepo, normalizer, deriver, application.SystemClock{}, logger)
	if err != nil {
		logger.Fatalf("plan ingest service error: %v", err)
	}
	planHandler, err := planhttp.NewPlanHandler(ingestService, planRepo, pricingCfg.Checkpoints, logger)
	if err != nil {
		logger.Fatalf("plan handler error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/plans", planHandler)
	mux.Handle("/api/v1/plans/", planHandler)
	mux.Handle("/api/v1/exports/plans.xlsx", planHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(mux, logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
