package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/aeolus/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider resolves places through the Google Maps geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider creates a GoogleProvider around an existing Maps client.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Locate returns the coordinates of the best match for place.
func (gp *GoogleProvider) Locate(ctx context.Context, place string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Locating using Google Maps", "place", place)

	req := maps.GeocodingRequest{Address: place}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to locate place: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}
	loc := results[0].Geometry.Location

	return &models.Coordinates{Longitude: loc.Lng, Latitude: loc.Lat}, nil
}
