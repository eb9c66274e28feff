package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/locator"
	"github.com/UnknownOlympus/aeolus/internal/metrics"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/repository"
	"github.com/UnknownOlympus/aeolus/internal/rules"
	"github.com/UnknownOlympus/aeolus/internal/site"
	"github.com/UnknownOlympus/aeolus/internal/weather"
)

// EvaluationService periodically evaluates every stored launch against the
// current wind and records the resulting decisions.
type EvaluationService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	weather      weather.Provider     // Source of current wind observations
	evaluator    rules.Evaluator      // Rule engine turning facts into decisions
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval between evaluation rounds

	home     *models.Coordinates // Center of the search area, nil for all sites
	radiusKm float64             // Radius of the search area
}

// NewEvaluationService creates a new instance of EvaluationService.
func NewEvaluationService(
	log *slog.Logger,
	repo repository.Interface,
	weatherProvider weather.Provider,
	evaluator rules.Evaluator,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
) *EvaluationService {
	return &EvaluationService{
		log:          log,
		repo:         repo,
		weather:      weatherProvider,
		evaluator:    evaluator,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
	}
}

// RestrictTo limits evaluation to sites within radiusKm of home.
// A non-positive radius removes the restriction.
func (es *EvaluationService) RestrictTo(home models.Coordinates, radiusKm float64) {
	if radiusKm <= 0 {
		es.home = nil
		return
	}
	es.home = &home
	es.radiusKm = radiusKm
}

// RestrictToPlace resolves place and limits evaluation to the sites within
// radiusKm of it. On failure the current search area is kept.
func (es *EvaluationService) RestrictToPlace(
	ctx context.Context,
	places locator.Provider,
	place string,
	radiusKm float64,
) error {
	home, err := places.Locate(ctx, place)
	if err != nil {
		return fmt.Errorf("failed to locate %q: %w", place, err)
	}

	es.RestrictTo(*home, radiusKm)
	es.log.InfoContext(ctx, "Search area set",
		"place", place, "lat", home.Latitude, "lon", home.Longitude, "radius_km", radiusKm)

	return nil
}

// Run starts the evaluation loop. It listens for a cancellation signal from
// the context to gracefully stop the service.
func (es *EvaluationService) Run(ctx context.Context) {
	ticker := time.NewTicker(es.pollInterval)
	defer ticker.Stop()

	es.log.InfoContext(ctx, "Evaluation service started...")

	for {
		select {
		case <-ctx.Done():
			es.log.InfoContext(ctx, "Evaluation service stopped.")
			return
		case <-ticker.C:
			es.log.InfoContext(ctx, "Starting evaluation round...")
			es.processSites(ctx)
		}
	}
}

// Sites returns the stored sites inside the search area.
func (es *EvaluationService) Sites(ctx context.Context) ([]site.Site, error) {
	start := time.Now()
	sites, err := es.repo.FetchSites(ctx)
	es.metrics.RequestSeconds.WithLabelValues(metrics.CollaboratorRepository).Observe(time.Since(start).Seconds())
	if err != nil {
		es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorRepository).Inc()
		return nil, err
	}

	if es.home != nil {
		sites = site.WithinRadius(sites, *es.home, es.radiusKm)
	}

	return sites, nil
}

// processSites fetches the sites, starts a worker pool to evaluate them and
// waits for all workers to finish.
func (es *EvaluationService) processSites(ctx context.Context) {
	sites, err := es.Sites(ctx)
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to fetch sites", "error", err)
		return
	}
	if len(sites) == 0 {
		es.log.InfoContext(ctx, "No sites to evaluate.")
		return
	}

	es.log.InfoContext(ctx, "Found sites to evaluate. Starting worker pool.",
		"jobs", len(sites),
		"num_workers", es.numWorkers,
	)

	jobs := make(chan site.Site, len(sites))
	var wgr sync.WaitGroup

	for i := 1; i <= es.numWorkers; i++ {
		wgr.Add(1)
		go es.worker(ctx, i, &wgr, jobs)
	}

	for _, s := range sites {
		jobs <- s
	}
	close(jobs)

	wgr.Wait()
	es.log.InfoContext(ctx, "Evaluation round finished")
}

func (es *EvaluationService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan site.Site) {
	defer wg.Done()
	for s := range jobs {
		es.metrics.ActiveWorkers.Inc()
		es.evaluateSite(ctx, idx, s)
		es.metrics.SitesProcessed.Inc()
		es.metrics.ActiveWorkers.Dec()
	}
}

// evaluateSite observes the wind once for the site and evaluates every launch
// against it. A failing launch does not stop the others.
func (es *EvaluationService) evaluateSite(ctx context.Context, idx int, s site.Site) {
	if s.LaunchCount() == 0 {
		es.log.DebugContext(ctx, "Site has no launches, skipping", "worker", idx, "site", s.Name)
		return
	}
	position, _ := s.Position()

	es.log.DebugContext(ctx, "Processing site", "worker", idx, "site", s.Name, "launches", s.LaunchCount())

	start := time.Now()
	wind, err := es.weather.Observe(ctx, position)
	es.metrics.RequestSeconds.WithLabelValues(metrics.CollaboratorWeather).Observe(time.Since(start).Seconds())
	if err != nil {
		es.log.ErrorContext(ctx, "Failed to observe wind", "worker", idx, "site", s.Name, "error", err)
		es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorWeather).Inc()
		return
	}

	keys := s.LaunchKeys()
	for i, launch := range s.Launches() {
		fact := rules.BuildFact(launch, wind.Bearing, wind.Speed)

		start = time.Now()
		decision, err := es.evaluator.Evaluate(ctx, fact)
		es.metrics.RequestSeconds.WithLabelValues(metrics.CollaboratorEvaluator).Observe(time.Since(start).Seconds())
		if err != nil {
			es.log.ErrorContext(ctx, "Failed to evaluate launch",
				"worker", idx, "site", s.Name, "launch", launch.Location.Name, "error", err)
			es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorEvaluator).Inc()
			continue
		}

		es.metrics.Evaluations.WithLabelValues(string(decision.Classification)).Inc()

		if err = es.repo.RecordDecision(ctx, s.ID, keys[i], *wind, fact, decision); err != nil {
			es.log.ErrorContext(ctx, "Failed to record decision",
				"worker", idx, "site", s.Name, "launch", launch.Location.Name, "error", err)
			es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorRepository).Inc()
			continue
		}

		es.log.DebugContext(ctx, "Launch evaluated",
			"worker", idx,
			"site", s.Name,
			"launch", launch.Location.Name,
			"classification", decision.Classification,
		)
	}
}
