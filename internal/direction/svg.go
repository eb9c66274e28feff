package direction

import (
	"strconv"
	"strings"
)

// ArcPath renders r as an SVG path around center: a move to the start point
// followed by a single elliptical arc to the stop point. The sweep flag is
// always 1 because ranges are clockwise.
func (r Range) ArcPath(center Point, radius float64) string {
	start, stop := r.Endpoints(radius)
	flags := r.Flags()

	large := "0"
	if flags.MajorArc {
		large = "1"
	}

	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(num(center.X + start.X))
	b.WriteByte(' ')
	b.WriteString(num(center.Y + start.Y))
	b.WriteString(" A ")
	b.WriteString(num(radius))
	b.WriteByte(' ')
	b.WriteString(num(radius))
	b.WriteString(" 0 ")
	b.WriteString(large)
	b.WriteString(" 1 ")
	b.WriteString(num(center.X + stop.X))
	b.WriteByte(' ')
	b.WriteString(num(center.Y + stop.Y))

	return b.String()
}

func num(v float64) string {
	const precision = 3
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if s == "-0.000" {
		return "0.000"
	}

	return s
}
