package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/angle"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"golang.org/x/time/rate"
)

// OpenMeteoBaseURL is the public Open-Meteo forecast endpoint.
const OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

const openMeteoTimeLayout = "2006-01-02T15:04"

// Common errors for the Open-Meteo provider.
var (
	ErrEmptyResponse = errors.New("open-meteo returned no current conditions")
	ErrStatus        = errors.New("open-meteo returned unexpected status")
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenMeteoProvider implements the Provider interface using the Open-Meteo forecast API.
// The API is free without a key but asks clients to stay under 10k calls a day.
type OpenMeteoProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the forecast API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

type openMeteoResponse struct {
	Current *struct {
		Time          string   `json:"time"`
		WindSpeed     *float64 `json:"wind_speed_10m"`
		WindDirection *float64 `json:"wind_direction_10m"`
		WindGusts     *float64 `json:"wind_gusts_10m"`
	} `json:"current"`
}

// NewOpenMeteoProvider creates a new Open-Meteo provider allowing rateLimit requests per second.
// An empty baseURL selects the public endpoint.
func NewOpenMeteoProvider(baseURL string, rateLimit int, log *slog.Logger) *OpenMeteoProvider {
	const timeout = 10

	return NewOpenMeteoProviderWithClient(
		&http.Client{Timeout: timeout * time.Second},
		baseURL,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewOpenMeteoProviderWithClient allows injecting custom HTTP client and limiter.
func NewOpenMeteoProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}

	return &OpenMeteoProvider{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// Observe fetches the current 10 m wind at coords. Speeds are reported in m/s.
func (op *OpenMeteoProvider) Observe(ctx context.Context, coords models.Coordinates) (*models.WindObservation, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(op.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', 4, 64))
	query.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', 4, 64))
	query.Set("current", "wind_speed_10m,wind_direction_10m,wind_gusts_10m")
	query.Set("wind_speed_unit", "ms")
	query.Set("timezone", "GMT")
	reqURL.RawQuery = query.Encode()

	op.log.DebugContext(ctx, "Open-Meteo request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		op.log.ErrorContext(ctx, "Open-Meteo API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, string(body))
	}

	var result openMeteoResponse
	if err = json.Unmarshal(body, &result); err != nil {
		op.log.ErrorContext(ctx, "Failed to parse Open-Meteo response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode open-meteo response: %w", err)
	}

	current := result.Current
	if current == nil || current.WindSpeed == nil || current.WindDirection == nil {
		return nil, ErrEmptyResponse
	}

	observation := &models.WindObservation{
		Bearing: angle.Normalize(*current.WindDirection),
		Speed:   *current.WindSpeed,
	}
	if current.WindGusts != nil {
		observation.Gust = *current.WindGusts
	}
	if observedAt, perr := time.Parse(openMeteoTimeLayout, current.Time); perr == nil {
		observation.ObservedAt = observedAt.UTC()
	} else {
		op.log.WarnContext(ctx, "Open-Meteo returned unparsable time", "time", current.Time)
	}

	return observation, nil
}
