// Package locator resolves place names, such as a pilot's home town, into coordinates.
package locator

import (
	"context"

	"github.com/UnknownOlympus/aeolus/internal/models"
)

// Provider resolves a free-form place name into coordinates.
type Provider interface {
	Locate(ctx context.Context, place string) (*models.Coordinates, error)
}
