// Package angle converts between compass bearings and planar angles and
// measures clockwise spans between bearings.
//
// Bearings are degrees measured clockwise from north. Planar angles are
// radians measured from the +x axis with y growing downward, which is the
// convention SVG and most screen canvases use.
package angle

import "math"

const fullTurn = 360.0

// Normalize reduces a bearing in degrees into [0, 360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, fullTurn)
	if d < 0 {
		d += fullTurn
	}
	// math.Mod(-tiny, 360) + 360 rounds up to 360.
	if d >= fullTurn {
		d = 0
	}

	return d
}

// ClockwiseDifference returns the clockwise rotation in degrees needed to go
// from bearing a to bearing b. The result is in [0, 360).
func ClockwiseDifference(a, b float64) float64 {
	if a == b {
		return 0
	}

	return Normalize(b - a)
}

// IsMajorArc reports whether the clockwise arc from a to b is the long way
// around the circle.
func IsMajorArc(a, b float64) bool {
	return ClockwiseDifference(a, b) > fullTurn/2
}

// ShortestDifference returns the smallest angle between two bearings,
// ignoring direction. The result is in [0, 180].
func ShortestDifference(a, b float64) float64 {
	d := ClockwiseDifference(a, b)
	if d > fullTurn/2 {
		d = fullTurn - d
	}

	return d
}

// BearingToPlanarRadians maps a compass bearing to a planar angle. Bearing 0
// (north) maps to -π/2, i.e. straight up on a y-down canvas.
func BearingToPlanarRadians(bearing float64) float64 {
	return (bearing - 90) * math.Pi / 180
}

// PlanarRadiansToBearing is the inverse of BearingToPlanarRadians. The result
// is normalized into [0, 360).
func PlanarRadiansToBearing(radians float64) float64 {
	return Normalize(radians*180/math.Pi + 90)
}
