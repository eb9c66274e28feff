// Package paraglidingearth searches the Paragliding Earth site database for
// flying sites around a point.
package paraglidingearth

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/angle"
	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/site"
	"golang.org/x/time/rate"
)

// BaseURL is the public "sites around a point" endpoint.
const BaseURL = "http://www.paraglidingearth.com/api/getAroundLatLngSites.php"

const userAgent = "Aeolus-Site-Service/1.0 (https://github.com/UnknownOlympus/aeolus)"

// halfSector is half the width of one of the 8 orientation sectors.
const halfSector = 22.5

// ErrStatus is returned when the API answers with a non-200 status.
var ErrStatus = errors.New("paragliding earth API returned unexpected status")

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type searchResponse struct {
	Takeoffs []takeoff `xml:"takeoff"`
}

type takeoff struct {
	ID           string        `xml:"pge_site_id"`
	Name         string        `xml:"name"`
	Lat          float64       `xml:"lat"`
	Lng          float64       `xml:"lng"`
	Altitude     float64       `xml:"takeoff_altitude"`
	CountryCode  string        `xml:"countryCode"`
	Paragliding  int           `xml:"paragliding"`
	Orientations *orientations `xml:"orientations"`
}

// Ratings: 0 not suitable, 1 possible, 2 good.
type orientations struct {
	N  int `xml:"N"`
	NE int `xml:"NE"`
	E  int `xml:"E"`
	SE int `xml:"SE"`
	S  int `xml:"S"`
	SW int `xml:"SW"`
	W  int `xml:"W"`
	NW int `xml:"NW"`
}

func (o orientations) rated() []float64 {
	ratings := [...]int{o.N, o.NE, o.E, o.SE, o.S, o.SW, o.W, o.NW}

	var bearings []float64
	for i, r := range ratings {
		if r >= 1 {
			bearings = append(bearings, float64(i)*2*halfSector)
		}
	}

	return bearings
}

// fallbackBearings are used for takeoffs that publish no orientation at all.
var fallbackBearings = []float64{0, 90, 180, 270}

// Client queries the Paragliding Earth API.
type Client struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Endpoint of the search
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Keeps requests under the fair use limit
}

// NewClient creates a client against the public endpoint.
func NewClient(log *slog.Logger) *Client {
	const timeout = 30
	return NewClientWithHTTPClient(
		&http.Client{Timeout: timeout * time.Second},
		BaseURL,
		rate.NewLimiter(rate.Every(time.Second), 1),
		log,
	)
}

// NewClientWithHTTPClient creates a client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTPClient(client HTTPClient, baseURL string, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// Search returns the paragliding sites within radiusKm of center. Each
// orientation rated possible or good becomes one hang launch covering its
// 45° sector. Takeoffs flagged as not suitable for paragliding, or with
// invalid coordinates, are skipped.
func (c *Client) Search(ctx context.Context, center models.Coordinates, radiusKm float64) ([]site.Site, error) {
	c.log.DebugContext(ctx, "Searching Paragliding Earth",
		"lat", center.Latitude, "lon", center.Longitude, "radius_km", radiusKm)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("lat", strconv.FormatFloat(center.Latitude, 'f', -1, 64))
	query.Set("lng", strconv.FormatFloat(center.Longitude, 'f', -1, 64))
	query.Set("distance", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	query.Set("format", "xml")
	query.Set("style", "detailled")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.log.ErrorContext(ctx, "Paragliding Earth API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w %d: %s", ErrStatus, resp.StatusCode, string(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var result searchResponse
	if err = xml.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode paragliding earth response: %w", err)
	}

	sites := make([]site.Site, 0, len(result.Takeoffs))
	for _, t := range result.Takeoffs {
		if s, ok := c.convert(ctx, t); ok {
			sites = append(sites, s)
		}
	}

	c.log.InfoContext(ctx, "Paragliding Earth search finished", "takeoffs", len(result.Takeoffs), "sites", len(sites))

	return sites, nil
}

func (c *Client) convert(ctx context.Context, t takeoff) (site.Site, bool) {
	if t.Paragliding != 1 {
		return site.Site{}, false
	}

	coords := models.Coordinates{Latitude: t.Lat, Longitude: t.Lng}
	if err := coords.Validate(); err != nil {
		c.log.WarnContext(ctx, "Skipping takeoff with bad coordinates", "site_id", t.ID, "name", t.Name, "error", err)
		return site.Site{}, false
	}

	var bearings []float64
	if t.Orientations != nil {
		bearings = t.Orientations.rated()
	}
	if len(bearings) == 0 {
		bearings = fallbackBearings
	}

	place := models.Location{Coordinates: coords, Name: t.Name, Country: t.CountryCode}
	s := site.New(t.Name, t.CountryCode)
	for _, b := range bearings {
		s, _ = s.AddLaunch(models.Launch{
			Location:  place,
			Elevation: models.Elevation(max(t.Altitude, 0)),
			Direction: direction.Range{
				Start: angle.Normalize(b - halfSector),
				Stop:  angle.Normalize(b + halfSector),
			},
			SiteType: models.SiteTypeHang,
		})
	}

	return s, true
}
