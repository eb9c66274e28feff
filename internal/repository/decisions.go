package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/rules"
	"github.com/UnknownOlympus/aeolus/internal/site"
)

const insertDecisionQuery = `
	INSERT INTO decisions (site_id, launch_key, wind_bearing, wind_speed, wind_gust, observed_at,
		classification, score, reasons, raw)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// RecordDecision appends the verdict for one launch. Gust and reading time come
// from the observation the fact was built from, since the fact carries neither.
// The engine's raw payload is stored untouched when present.
func (r *Repository) RecordDecision(
	ctx context.Context,
	siteID int64,
	key site.Key,
	wind models.WindObservation,
	fact rules.Fact,
	decision rules.Decision,
) error {
	reasons := decision.Reasons
	if reasons == nil {
		reasons = []string{}
	}

	var raw []byte
	if len(decision.Raw) > 0 {
		raw = decision.Raw
	}

	var observedAt *time.Time
	if !wind.ObservedAt.IsZero() {
		observedAt = &wind.ObservedAt
	}

	_, err := r.db.Exec(ctx, insertDecisionQuery,
		siteID, string(key), fact.WindBearing, fact.WindSpeed, wind.Gust, observedAt,
		string(decision.Classification), decision.Score, reasons, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to record decision: %w", err)
	}

	return nil
}
