// Package direction models the arc of wind directions a launch accepts.
//
// A Range is always read clockwise from Start to Stop and may wrap through
// north. There is no counter-clockwise representation.
package direction

import (
	"math"

	"github.com/UnknownOlympus/aeolus/internal/angle"
)

// Range is the clockwise arc of acceptable wind bearings, in degrees.
//
// Ranges are not validated: a zero-width range (Start == Stop) is a legal
// value that accepts no wind direction at all.
type Range struct {
	Start float64 `json:"start"` // Start bearing of the arc.
	Stop  float64 `json:"stop"`  // Stop bearing of the arc, reached clockwise from Start.
}

// Endpoint identifies one end of a Range.
type Endpoint int

const (
	// Start is the endpoint the arc begins at.
	Start Endpoint = iota
	// Stop is the endpoint the arc ends at.
	Stop
)

func (e Endpoint) String() string {
	if e == Stop {
		return "stop"
	}

	return "start"
}

// ArcFlags are the two flags an SVG-style elliptical arc needs.
type ArcFlags struct {
	MajorArc  bool `json:"majorArc"`
	Clockwise bool `json:"clockwise"`
}

// Point is a planar position relative to the arc center, y growing downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Flags returns the arc flags for drawing r. Clockwise is always true.
func (r Range) Flags() ArcFlags {
	return ArcFlags{
		MajorArc:  angle.IsMajorArc(r.Start, r.Stop),
		Clockwise: true,
	}
}

// Endpoints returns the planar positions of the start and stop bearings on a
// circle of the given radius centered at the origin.
func (r Range) Endpoints(radius float64) (Point, Point) {
	return pointAt(r.Start, radius), pointAt(r.Stop, radius)
}

func pointAt(bearing, radius float64) Point {
	rad := angle.BearingToPlanarRadians(bearing)

	return Point{X: radius * math.Cos(rad), Y: radius * math.Sin(rad)}
}

// WithEndpoint returns a copy of r with the given endpoint moved to bearing.
// The other endpoint is untouched. Nothing is clamped, so dragging one end
// past the other simply yields a different arc.
func (r Range) WithEndpoint(which Endpoint, bearing float64) Range {
	if which == Stop {
		r.Stop = bearing
	} else {
		r.Start = bearing
	}

	return r
}

// WithPointerAngle is WithEndpoint for a raw planar pointer angle in radians,
// as delivered by a drag handler on the rendered arc.
func (r Range) WithPointerAngle(which Endpoint, radians float64) Range {
	return r.WithEndpoint(which, angle.PlanarRadiansToBearing(radians))
}

// Width is the clockwise span of the arc in degrees, in [0, 360).
func (r Range) Width() float64 {
	return angle.ClockwiseDifference(r.Start, r.Stop)
}

// IsDegenerate reports whether the arc has zero width.
func (r Range) IsDegenerate() bool {
	return r.Width() == 0
}

// Contains reports whether bearing lies on the arc, endpoints included.
// A degenerate range contains nothing.
func (r Range) Contains(bearing float64) bool {
	if r.IsDegenerate() {
		return false
	}

	return angle.ClockwiseDifference(r.Start, bearing) <= r.Width()
}

// Deviation is how far bearing lies outside the arc: zero when the arc
// contains it, otherwise the shortest angle to the nearer endpoint.
func (r Range) Deviation(bearing float64) float64 {
	if r.Contains(bearing) {
		return 0
	}

	return math.Min(
		angle.ShortestDifference(bearing, r.Start),
		angle.ShortestDifference(bearing, r.Stop),
	)
}

// Center is the bearing halfway along the arc.
func (r Range) Center() float64 {
	return angle.Normalize(r.Start + r.Width()/2)
}
