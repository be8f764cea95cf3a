package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbyiringiro/momoverify/internal/api/handlers"
	"github.com/kbyiringiro/momoverify/internal/api/middleware"
	"github.com/kbyiringiro/momoverify/internal/archive"
	"github.com/kbyiringiro/momoverify/internal/config"
	infraBQ "github.com/kbyiringiro/momoverify/internal/infra/bigquery"
	"github.com/kbyiringiro/momoverify/internal/logger"
	"github.com/kbyiringiro/momoverify/internal/store"
	"github.com/kbyiringiro/momoverify/internal/store/inmemory"
	"github.com/kbyiringiro/momoverify/internal/verify"
)

func main() {
	// Parse command-line flags
	var (
		configPath = flag.String("config", os.Getenv("CONFIG_FILE"), "Path to YAML config file (optional)")
		port       = flag.String("port", "", "HTTP server port (overrides config)")
		storeKind  = flag.String("store", "bigquery", "Message store backend: bigquery or memory")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	ctx := context.Background()

	// Initialize the message store
	var repo store.MessageRepository
	switch *storeKind {
	case "memory":
		log.Warn().Msg("Using in-memory store - records are lost on restart")
		repo = inmemory.NewStore()
	case "bigquery":
		if err := cfg.ValidateForBigQuery(); err != nil {
			log.Fatal().Err(err).Msg("Invalid BigQuery configuration")
		}
		bqRepo, err := infraBQ.NewBigQueryMessageRepository(ctx, cfg.BigQuery.ProjectID, cfg.BigQuery.Dataset, cfg.BigQuery.Table)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create message repository")
		}
		defer bqRepo.Close()
		repo = bqRepo
	default:
		log.Fatal().Str("store", *storeKind).Msg("Unknown store backend")
	}

	// Initialize the raw-message archive
	var archiver archive.Archiver = archive.NopArchiver{}
	if cfg.Archive.Bucket != "" {
		archiver = archive.NewGCSArchiver(cfg.Archive.Bucket)
	} else {
		log.Warn().Msg("No GCS bucket configured - raw message archiving is disabled")
	}

	// Initialize handlers
	smsHandler := handlers.NewSMSHandler(repo, archiver, log)
	verificationsHandler := handlers.NewVerificationsHandler(verify.New(repo), log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/receive-sms", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			smsHandler.ReceiveSMS(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/verify-payment", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			verificationsHandler.VerifyPayment(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoints
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		handlers.Health(w, r)
	})

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", *storeKind).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
