package site

import "github.com/UnknownOlympus/aeolus/internal/models"

// WithinRadius returns the sites whose Position lies within radiusKm of
// center. Sites with no launches and no landings have no position and are
// never returned.
func WithinRadius(sites []Site, center models.Coordinates, radiusKm float64) []Site {
	var nearby []Site
	for _, s := range sites {
		pos, ok := s.Position()
		if !ok {
			continue
		}
		if pos.DistanceKm(center) <= radiusKm {
			nearby = append(nearby, s)
		}
	}

	return nearby
}
