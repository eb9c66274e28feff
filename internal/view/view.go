// Package view renders sites into the JSON shape consumed by map and
// compass front ends.
package view

import (
	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/site"
)

// DefaultRadius is the compass radius used when Options leaves it unset.
const DefaultRadius = 40.0

// Options controls how a site is drawn.
type Options struct {
	Radius    float64 // Radius of the compass rose.
	Tolerance float64 // Degrees within which a launch and a landing are the same spot.
}

// LaunchView is a launch ready to draw on a compass rose centered at (Radius, Radius).
type LaunchView struct {
	Key        site.Key           `json:"key"`
	Launch     models.Launch      `json:"launch"`
	From       string             `json:"from"` // Compass label of the start bearing.
	To         string             `json:"to"`   // Compass label of the stop bearing.
	Flags      direction.ArcFlags `json:"flags"`
	Start      direction.Point    `json:"start"`
	Stop       direction.Point    `json:"stop"`
	Path       string             `json:"path"`
	Coincident bool               `json:"coincident"`
}

// LandingView is a landing with its coincidence flag.
type LandingView struct {
	Key        site.Key       `json:"key"`
	Landing    models.Landing `json:"landing"`
	Coincident bool           `json:"coincident"`
}

// SiteView is the renderable form of a site.
type SiteView struct {
	ID       int64         `json:"id,omitempty"`
	Name     string        `json:"name"`
	Country  string        `json:"country,omitempty"`
	Radius   float64       `json:"radius"`
	Launches []LaunchView  `json:"launches"`
	Landings []LandingView `json:"landings"`
}

// Build renders s. Coincidence is recomputed from the current coordinates.
func Build(s site.Site, opts Options) SiteView {
	if opts.Radius <= 0 {
		opts.Radius = DefaultRadius
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = models.DefaultTolerance
	}

	center := direction.Point{X: opts.Radius, Y: opts.Radius}

	launches := s.CoincidentLaunches(opts.Tolerance)
	out := SiteView{
		ID:       s.ID,
		Name:     s.Name,
		Country:  s.Country,
		Radius:   opts.Radius,
		Launches: make([]LaunchView, 0, len(launches)),
	}

	for _, flagged := range launches {
		r := flagged.Item.Direction
		start, stop := r.Endpoints(opts.Radius)
		out.Launches = append(out.Launches, LaunchView{
			Key:        flagged.Key,
			Launch:     flagged.Item,
			From:       direction.Cardinal(r.Start),
			To:         direction.Cardinal(r.Stop),
			Flags:      r.Flags(),
			Start:      start,
			Stop:       stop,
			Path:       r.ArcPath(center, opts.Radius),
			Coincident: flagged.Coincident,
		})
	}

	landings := s.CoincidentLandings(opts.Tolerance)
	out.Landings = make([]LandingView, 0, len(landings))
	for _, flagged := range landings {
		out.Landings = append(out.Landings, LandingView{
			Key:        flagged.Key,
			Landing:    flagged.Item,
			Coincident: flagged.Coincident,
		})
	}

	return out
}

// BuildAll renders every site with the same options.
func BuildAll(sites []site.Site, opts Options) []SiteView {
	views := make([]SiteView, 0, len(sites))
	for _, s := range sites {
		views = append(views, Build(s, opts))
	}

	return views
}
