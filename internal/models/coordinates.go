package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultTolerance is the default "same place" tolerance in degrees, roughly 11 m.
const DefaultTolerance = 1e-4

const earthRadiusKm = 6371.0

// ErrInvalidCoordinates is returned when latitude or longitude are outside their valid range.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Coordinates represents a geographical point defined by its latitude and longitude.
// It is an immutable value and must be compared with Near, never with ==.
type Coordinates struct {
	Latitude  float64 `json:"latitude"  validate:"latitude"`  // Latitude in degrees, [-90, 90].
	Longitude float64 `json:"longitude" validate:"longitude"` // Longitude in degrees, [-180, 180].
}

// Near reports whether c and other are within tolerance degrees of each other,
// checking latitude and longitude independently. It is a display heuristic,
// not a distance.
func (c Coordinates) Near(other Coordinates, tolerance float64) bool {
	return math.Abs(c.Latitude-other.Latitude) <= tolerance &&
		math.Abs(c.Longitude-other.Longitude) <= tolerance
}

// Validate checks that the coordinates are on the globe.
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90, got %v", ErrInvalidCoordinates, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180, got %v", ErrInvalidCoordinates, c.Longitude)
	}

	return nil
}

// DistanceKm returns the great-circle distance to other using the haversine formula.
func (c Coordinates) DistanceKm(other Coordinates) float64 {
	lat1 := c.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Longitude - c.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ParseLonLat parses the "longitude,latitude" notation used by KML-like site exports.
func ParseLonLat(s string) (Coordinates, error) {
	lon, lat, found := strings.Cut(s, ",")
	if !found {
		return Coordinates{}, fmt.Errorf("%w: expected 'longitude,latitude', got %q", ErrInvalidCoordinates, s)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: invalid longitude %q", ErrInvalidCoordinates, lon)
	}

	// Some exports append an altitude as a third component.
	lat, _, _ = strings.Cut(lat, ",")
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("%w: invalid latitude %q", ErrInvalidCoordinates, lat)
	}

	coords := Coordinates{Latitude: latitude, Longitude: longitude}
	if err = coords.Validate(); err != nil {
		return Coordinates{}, err
	}

	return coords, nil
}
