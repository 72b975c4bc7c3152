package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"torque-lite-pro/internal/admin"
	archivepostgres "torque-lite-pro/internal/archive/postgres"
	"torque-lite-pro/internal/auth"
	"torque-lite-pro/internal/config"
	"torque-lite-pro/internal/ingest"
	"torque-lite-pro/internal/observability/metrics"
	"torque-lite-pro/internal/routing"
	"torque-lite-pro/internal/session"
	"torque-lite-pro/internal/vehicle"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const uploadPath = "/api/torque"

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}

	metrics.Init()

	var archiver *archivepostgres.SnapshotArchiver
	if cfg.ArchiveDSN != "" {
		db, err := sql.Open("pgx", cfg.ArchiveDSN)
		if err != nil {
			logger.Fatalf("archive db open error: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("archive db ping error: %v", err)
		}
		archiver, err = archivepostgres.NewSnapshotArchiver(db)
		if err != nil {
			logger.Fatalf("snapshot archiver error: %v", err)
		}
		logger.Printf("snapshot archive enabled")
	}

	parser := session.NewParser(logger)
	cache := session.NewCache(
		time.Duration(cfg.SessionTTLSeconds)*time.Second,
		cfg.MaxSessions,
		session.WithEvictionCallback(metrics.AddEviction),
	)
	router := routing.NewRouter()

	var extra routing.Consumer
	if archiver != nil {
		extra = archiver
	}
	manager := vehicle.NewManager(vehicle.NewRegistry(), extra, logger)

	for _, tenant := range cfg.Tenants {
		consumer, err := manager.ConsumerFor(tenant.ID)
		if err != nil {
			logger.Fatalf("tenant %s consumer error: %v", tenant.ID, err)
		}
		router.UpsertRoute(tenant.ID, tenant.Email, consumer, tenant.Imperial, tenant.Language)
		logger.Printf("tenant %s registered (email=%q)", tenant.ID, tenant.Email)
	}

	ingestHandler, err := ingest.NewHandler(router, parser, cache, logger)
	if err != nil {
		logger.Fatalf("ingest handler error: %v", err)
	}
	adminHandler, err := admin.NewHandler(router, manager, cache, ingestHandler.LastSession, logger)
	if err != nil {
		logger.Fatalf("admin handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, []string{uploadPath})
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)
	uploadAuth := auth.NewUploadTokenMiddleware(cfg.UploadToken)

	mux := http.NewServeMux()
	mux.Handle(uploadPath, uploadAuth.Wrap(ingestHandler))
	mux.Handle("/api/v1/", adminHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
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
