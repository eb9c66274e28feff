// Package weather fetches the current wind at a place.
package weather

import (
	"context"

	"github.com/UnknownOlympus/aeolus/internal/models"
)

// Provider reports the current wind observed at the given coordinates.
type Provider interface {
	Observe(ctx context.Context, coords models.Coordinates) (*models.WindObservation, error)
}
