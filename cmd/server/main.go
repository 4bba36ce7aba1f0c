package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/CubeDr/hyuni-pay/internal/config"
	"github.com/CubeDr/hyuni-pay/internal/middleware"
	"github.com/CubeDr/hyuni-pay/internal/ocr"
	"github.com/CubeDr/hyuni-pay/internal/service"
	"github.com/CubeDr/hyuni-pay/internal/storage/sqlite"
	"github.com/CubeDr/hyuni-pay/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	gemini := ocr.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)
	svc := service.New(store, gemini, service.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		BankAccount:    cfg.BankAccount,
		ShareBaseURL:   cfg.ShareBaseURL,
	})

	metrics := middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(metrics.Handler)

	r.Route("/api", svc.Routes)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// h2c allows HTTP/2 without TLS for clients behind a local proxy.
	handler := h2c.NewHandler(r, &http2.Server{})

	addr := cfg.HTTPAddr()
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
