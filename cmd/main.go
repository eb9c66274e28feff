package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/config"
	"github.com/UnknownOlympus/aeolus/internal/dhv"
	"github.com/UnknownOlympus/aeolus/internal/locator"
	"github.com/UnknownOlympus/aeolus/internal/metrics"
	"github.com/UnknownOlympus/aeolus/internal/paraglidingearth"
	"github.com/UnknownOlympus/aeolus/internal/repository"
	"github.com/UnknownOlympus/aeolus/internal/rules"
	"github.com/UnknownOlympus/aeolus/internal/service"
	"github.com/UnknownOlympus/aeolus/internal/view"
	"github.com/UnknownOlympus/aeolus/internal/weather"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare DB schema: %v", err)
	}

	// Wind observations are shared by every launch of a site and by nearby sites.
	windSource := weather.NewCachedProvider(
		weather.NewOpenMeteoProvider(cfg.Weather.URL, cfg.Weather.RateLimit, logger),
		cfg.Weather.CacheSize,
		cfg.Weather.CacheTTL,
		logger,
	)

	evaluator, err := rules.NewEvaluator(rules.EvaluatorConfig{
		Type:    rules.EvaluatorType(cfg.Evaluator.Type),
		URL:     cfg.Evaluator.URL,
		Timeout: cfg.Evaluator.Timeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("Failed to create evaluator: %v", err)
	}

	logger.InfoContext(ctx, "Evaluator initialized", "type", cfg.Evaluator.Type)

	evalService := service.NewEvaluationService(
		logger,
		repo,
		windSource,
		evaluator,
		appMetrics,
		cfg.Workers,
		cfg.Interval,
	)

	if cfg.HomePlace != "" && cfg.SearchRadiusKm > 0 {
		restrictToHome(ctx, logger, cfg, evalService)
	}

	if cfg.DHVFile != "" {
		importDHV(ctx, logger, cfg.DHVFile, evalService)
	}

	if cfg.ParaglidingEarth {
		_, err = evalService.ImportNearby(ctx, paraglidingearth.NewClient(logger))
		if err != nil {
			logger.WarnContext(ctx, "Skipping Paragliding Earth sites", "error", err)
		}
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, dtb, evalService, cfg)

	go evalService.Run(ctx)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// restrictToHome resolves the configured home place and limits evaluation to
// the sites around it. Evaluation falls back to all sites if it cannot be found.
func restrictToHome(ctx context.Context, logger *slog.Logger, cfg *config.Config, svc *service.EvaluationService) {
	rateLimit := 50
	places, err := locator.NewProvider(locator.ProviderConfig{
		Type:      locator.ProviderType(cfg.Locator.Type),
		APIKey:    cfg.Locator.APIKey,
		RateLimit: rateLimit / cfg.Workers,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create locator provider: %v", err)
	}

	if err = svc.RestrictToPlace(ctx, places, cfg.HomePlace, cfg.SearchRadiusKm); err != nil {
		logger.ErrorContext(ctx, "Failed to set search area, evaluating all sites", "error", err)
	}
}

// importDHV loads the DHV export and stores the sites not known yet.
func importDHV(ctx context.Context, logger *slog.Logger, path string, svc *service.EvaluationService) {
	sites, err := dhv.NewImporter(logger).LoadFile(ctx, path)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load DHV export", "path", path, "error", err)
		return
	}

	if _, err = svc.ImportSites(ctx, sites); err != nil {
		logger.ErrorContext(ctx, "Failed to import DHV sites", "error", err)
	}
}

// startMonitoringServer starts an HTTP server that provides health check, metrics
// and site view endpoints.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - dtb: A pgxpool connector for database methods (ping)
// - svc: The evaluation service providing the sites in the search area.
// - cfg: Application configuration (port, coincidence tolerance).
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	svc *service.EvaluationService,
	cfg *config.Config,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.HandleFunc("/sites", func(writer http.ResponseWriter, req *http.Request) {
		sites, err := svc.Sites(req.Context())
		if err != nil {
			log.ErrorContext(ctx, "Failed to load sites", "error", err)
			http.Error(writer, "failed to load sites", http.StatusInternalServerError)
			return
		}

		writer.Header().Set("Content-Type", "application/json")
		views := view.BuildAll(sites, view.Options{Tolerance: cfg.CoincidenceTolerance})
		if err = json.NewEncoder(writer).Encode(views); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", cfg.Port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
