package direction

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/UnknownOlympus/aeolus/internal/angle"
)

// ErrUnknownDirection is returned for compass text that names no known direction.
var ErrUnknownDirection = errors.New("unknown compass direction")

// halfPoint is half the width of one of the 16 compass points.
const halfPoint = 11.25

var cardinals = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Site databases from German-speaking countries write east as "O" (Ost).
var compassPoints = map[string]float64{
	"N": 0, "NNE": 22.5, "NE": 45, "ENE": 67.5,
	"E": 90, "ESE": 112.5, "SE": 135, "SSE": 157.5,
	"S": 180, "SSW": 202.5, "SW": 225, "WSW": 247.5,
	"W": 270, "WNW": 292.5, "NW": 315, "NNW": 337.5,
	"NNO": 22.5, "NO": 45, "ONO": 67.5, "O": 90,
	"OSO": 112.5, "SO": 135, "SSO": 157.5,
}

// Cardinal returns the 16-point compass label closest to bearing.
func Cardinal(bearing float64) string {
	h := angle.Normalize(bearing + halfPoint)
	return cardinals[int(h/(2*halfPoint))%len(cardinals)]
}

// ParseCompass converts a single compass token such as "SSW" or "NO" into a bearing.
func ParseCompass(token string) (float64, error) {
	deg, ok := compassPoints[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, token)
	}

	return deg, nil
}

// ParseRange converts one textual launch direction into a Range.
//
// Accepted forms:
//   - "SSW-WSW": explicit clockwise range between two points;
//   - "W NW":    several points, the narrowest clockwise arc holding all of them;
//   - "N":       a single point, widened by half a compass point on each side.
func ParseRange(text string) (Range, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Range{}, fmt.Errorf("%w: empty text", ErrUnknownDirection)
	}

	if from, to, found := strings.Cut(text, "-"); found {
		start, err := ParseCompass(from)
		if err != nil {
			return Range{}, err
		}
		stop, err := ParseCompass(to)
		if err != nil {
			return Range{}, err
		}

		return Range{Start: start, Stop: stop}, nil
	}

	tokens := strings.Fields(text)
	if len(tokens) > 1 {
		bearings := make([]float64, 0, len(tokens))
		for _, tok := range tokens {
			deg, err := ParseCompass(tok)
			if err != nil {
				return Range{}, err
			}
			bearings = append(bearings, deg)
		}

		return covering(bearings), nil
	}

	deg, err := ParseCompass(text)
	if err != nil {
		return Range{}, err
	}

	return Range{
		Start: angle.Normalize(deg - halfPoint),
		Stop:  angle.Normalize(deg + halfPoint),
	}, nil
}

// covering returns the narrowest clockwise range containing every bearing:
// the complement of the widest gap between neighbouring bearings.
func covering(bearings []float64) Range {
	slices.Sort(bearings)

	last := len(bearings) - 1
	r := Range{Start: bearings[0], Stop: bearings[last]}
	widest := angle.ClockwiseDifference(bearings[last], bearings[0])
	for i := range last {
		if gap := bearings[i+1] - bearings[i]; gap > widest {
			widest = gap
			r = Range{Start: bearings[i+1], Stop: bearings[i]}
		}
	}

	return r
}

// ParseRanges parses a comma separated list of ranges. Parts that fail to
// parse are reported in the joined error while the rest are still returned.
func ParseRanges(text string) ([]Range, error) {
	var (
		ranges []Range
		errs   []error
	)

	for part := range strings.SplitSeq(text, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := ParseRange(part)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ranges = append(ranges, r)
	}

	return ranges, errors.Join(errs...)
}
