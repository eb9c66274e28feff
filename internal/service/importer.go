package service

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/aeolus/internal/metrics"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/site"
)

// ImportSites stores the given sites, skipping those already stored under
// the same name and country. It returns how many sites were saved.
func (es *EvaluationService) ImportSites(ctx context.Context, sites []site.Site) (int, error) {
	existing, err := es.repo.FetchSites(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load existing sites: %w", err)
	}

	known := make(map[string]bool, len(existing))
	for _, s := range existing {
		known[s.Country+"/"+s.Name] = true
	}

	saved := 0
	for _, s := range sites {
		if known[s.Country+"/"+s.Name] {
			continue
		}
		if _, err = es.repo.SaveSite(ctx, s); err != nil {
			es.log.ErrorContext(ctx, "Failed to import site", "site", s.Name, "error", err)
			es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorRepository).Inc()
			continue
		}
		known[s.Country+"/"+s.Name] = true
		saved++
	}

	es.log.InfoContext(ctx, "Site import finished", "offered", len(sites), "saved", saved)

	return saved, nil
}

// SiteSource finds flying sites around a point.
type SiteSource interface {
	Search(ctx context.Context, center models.Coordinates, radiusKm float64) ([]site.Site, error)
}

// ImportNearby imports the sites source knows within the search area. It
// does nothing while no search area is set.
func (es *EvaluationService) ImportNearby(ctx context.Context, source SiteSource) (int, error) {
	if es.home == nil {
		es.log.InfoContext(ctx, "No search area set, skipping nearby site import")
		return 0, nil
	}

	sites, err := source.Search(ctx, *es.home, es.radiusKm)
	if err != nil {
		es.metrics.CollaboratorErrors.WithLabelValues(metrics.CollaboratorSites).Inc()
		return 0, fmt.Errorf("failed to search nearby sites: %w", err)
	}

	return es.ImportSites(ctx, sites)
}
