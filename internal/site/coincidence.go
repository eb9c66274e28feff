package site

import "github.com/UnknownOlympus/aeolus/internal/models"

// Flagged pairs a record with whether it shares its spot with a record of the
// other kind (a launch on a landing field, or the reverse).
type Flagged[T any] struct {
	Key        Key
	Item       T
	Coincident bool
}

// CoincidentLaunches flags every launch that lies within tolerance degrees of
// some landing. The result follows launch display order and is computed from
// the current coordinates on every call.
func (s Site) CoincidentLaunches(tolerance float64) []Flagged[models.Launch] {
	landings := s.Landings()
	out := make([]Flagged[models.Launch], 0, s.launches.len())

	for _, key := range s.launches.order {
		launch := s.launches.items[key]
		flag := Flagged[models.Launch]{Key: key, Item: launch}
		for _, landing := range landings {
			if launch.Location.Near(landing.Location.Coordinates, tolerance) {
				flag.Coincident = true
				break
			}
		}
		out = append(out, flag)
	}

	return out
}

// CoincidentLandings flags every landing that lies within tolerance degrees of some launch.
func (s Site) CoincidentLandings(tolerance float64) []Flagged[models.Landing] {
	launches := s.Launches()
	out := make([]Flagged[models.Landing], 0, s.landings.len())

	for _, key := range s.landings.order {
		landing := s.landings.items[key]
		flag := Flagged[models.Landing]{Key: key, Item: landing}
		for _, launch := range launches {
			if landing.Location.Near(launch.Location.Coordinates, tolerance) {
				flag.Coincident = true
				break
			}
		}
		out = append(out, flag)
	}

	return out
}
