package direction_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRange_Flags(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rng   direction.Range
		major bool
	}{
		{name: "minor arc", rng: direction.Range{Start: 0, Stop: 90}, major: false},
		{name: "half circle is minor", rng: direction.Range{Start: 0, Stop: 180}, major: false},
		{name: "major arc", rng: direction.Range{Start: 0, Stop: 200}, major: true},
		{name: "wraps through north", rng: direction.Range{Start: 350, Stop: 10}, major: false},
		{name: "long way round", rng: direction.Range{Start: 10, Stop: 350}, major: true},
		{name: "degenerate", rng: direction.Range{Start: 45, Stop: 45}, major: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			flags := tc.rng.Flags()
			assert.Equal(t, tc.major, flags.MajorArc)
			assert.True(t, flags.Clockwise)
		})
	}
}

func TestRange_Endpoints(t *testing.T) {
	t.Parallel()

	start, stop := direction.Range{Start: 0, Stop: 90}.Endpoints(10)

	// North is up on a y-down canvas, east is right.
	assert.InDelta(t, 0.0, start.X, eps)
	assert.InDelta(t, -10.0, start.Y, eps)
	assert.InDelta(t, 10.0, stop.X, eps)
	assert.InDelta(t, 0.0, stop.Y, eps)

	south, west := direction.Range{Start: 180, Stop: 270}.Endpoints(2)
	assert.InDelta(t, 0.0, south.X, eps)
	assert.InDelta(t, 2.0, south.Y, eps)
	assert.InDelta(t, -2.0, west.X, eps)
	assert.InDelta(t, 0.0, west.Y, eps)
}

func TestRange_WithEndpoint(t *testing.T) {
	t.Parallel()

	base := direction.Range{Start: 200, Stop: 250}

	t.Run("start moves alone", func(t *testing.T) {
		t.Parallel()
		got := base.WithEndpoint(direction.Start, 180)
		assert.Equal(t, direction.Range{Start: 180, Stop: 250}, got)
		assert.Equal(t, direction.Range{Start: 200, Stop: 250}, base, "original must not change")
	})

	t.Run("stop moves alone", func(t *testing.T) {
		t.Parallel()
		got := base.WithEndpoint(direction.Stop, 300)
		assert.Equal(t, direction.Range{Start: 200, Stop: 300}, got)
	})

	t.Run("dragging through the other endpoint is not clamped", func(t *testing.T) {
		t.Parallel()
		got := base.WithEndpoint(direction.Stop, 190)
		assert.Equal(t, direction.Range{Start: 200, Stop: 190}, got)
		assert.InDelta(t, 350.0, got.Width(), eps)
		assert.True(t, got.Flags().MajorArc)
	})

	t.Run("zero width is allowed", func(t *testing.T) {
		t.Parallel()
		got := base.WithEndpoint(direction.Stop, 200)
		assert.True(t, got.IsDegenerate())
	})

	t.Run("pointer angle in radians", func(t *testing.T) {
		t.Parallel()
		got := base.WithPointerAngle(direction.Start, 0)
		assert.InDelta(t, 90.0, got.Start, eps)
		assert.InDelta(t, 250.0, got.Stop, eps)
	})

	t.Run("calls apply in delivery order", func(t *testing.T) {
		t.Parallel()
		got := base
		for _, b := range []float64{210, 220, 230} {
			got = got.WithEndpoint(direction.Start, b)
		}
		assert.InDelta(t, 230.0, got.Start, eps)
	})
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	wrapping := direction.Range{Start: 337.5, Stop: 22.5}
	assert.True(t, wrapping.Contains(0))
	assert.True(t, wrapping.Contains(350))
	assert.True(t, wrapping.Contains(22.5))
	assert.True(t, wrapping.Contains(337.5))
	assert.False(t, wrapping.Contains(180))
	assert.False(t, wrapping.Contains(30))

	plain := direction.Range{Start: 157.5, Stop: 202.5}
	assert.True(t, plain.Contains(180))
	assert.False(t, plain.Contains(0))

	assert.False(t, direction.Range{Start: 90, Stop: 90}.Contains(90))
}

func TestRange_Deviation(t *testing.T) {
	t.Parallel()

	r := direction.Range{Start: 337.5, Stop: 22.5}
	assert.InDelta(t, 0.0, r.Deviation(10), eps)
	assert.InDelta(t, 7.5, r.Deviation(30), eps)
	assert.InDelta(t, 7.5, r.Deviation(330), eps)
	assert.InDelta(t, 157.5, r.Deviation(180), eps)
}

func TestRange_Center(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, direction.Range{Start: 337.5, Stop: 22.5}.Center(), eps)
	assert.InDelta(t, 180.0, direction.Range{Start: 157.5, Stop: 202.5}.Center(), eps)
	assert.InDelta(t, 270.0, direction.Range{Start: 180, Stop: 0}.Center(), eps)
}

func TestRange_ArcPath(t *testing.T) {
	t.Parallel()

	t.Run("minor arc", func(t *testing.T) {
		t.Parallel()
		path := direction.Range{Start: 0, Stop: 90}.ArcPath(direction.Point{X: 50, Y: 50}, 40)
		assert.Equal(t, "M 50.000 10.000 A 40.000 40.000 0 0 1 90.000 50.000", path)
	})

	t.Run("major arc", func(t *testing.T) {
		t.Parallel()
		path := direction.Range{Start: 90, Stop: 0}.ArcPath(direction.Point{X: 50, Y: 50}, 40)
		assert.Equal(t, "M 90.000 50.000 A 40.000 40.000 0 1 1 50.000 10.000", path)
	})
}

func TestEndpoint_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "start", direction.Start.String())
	assert.Equal(t, "stop", direction.Stop.String())
}

func TestCardinal(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0: "N", 11: "N", 12: "NNE", 90: "E", 180: "S", 202.5: "SSW",
		270: "W", 337.5: "NNW", 350: "N", 359.9: "N", -90: "W",
	}
	for bearing, want := range cases {
		assert.Equal(t, want, direction.Cardinal(bearing), "bearing %v", bearing)
	}
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	t.Run("explicit range", func(t *testing.T) {
		t.Parallel()
		r, err := direction.ParseRange("SSW-WSW")
		require.NoError(t, err)
		assert.Equal(t, direction.Range{Start: 202.5, Stop: 247.5}, r)
	})

	t.Run("german tokens", func(t *testing.T) {
		t.Parallel()
		r, err := direction.ParseRange("SO-S")
		require.NoError(t, err)
		assert.Equal(t, direction.Range{Start: 135, Stop: 180}, r)
	})

	t.Run("single point is widened", func(t *testing.T) {
		t.Parallel()
		r, err := direction.ParseRange("N")
		require.NoError(t, err)
		assert.InDelta(t, 348.75, r.Start, eps)
		assert.InDelta(t, 11.25, r.Stop, eps)
		assert.InDelta(t, 22.5, r.Width(), eps)
	})

	t.Run("several points span the narrowest arc", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			text string
			want direction.Range
		}{
			{text: "NW W", want: direction.Range{Start: 270, Stop: 315}},
			{text: "NW N", want: direction.Range{Start: 315, Stop: 0}},
			{text: "N NNW NE", want: direction.Range{Start: 337.5, Stop: 45}},
			{text: "SO S SW", want: direction.Range{Start: 135, Stop: 225}},
		}

		for _, tt := range tests {
			r, err := direction.ParseRange(tt.text)
			require.NoError(t, err, tt.text)
			assert.Equal(t, tt.want, r, tt.text)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()
		_, err := direction.ParseRange("XYZ")
		require.ErrorIs(t, err, direction.ErrUnknownDirection)

		_, err = direction.ParseRange("N-QQ")
		require.ErrorIs(t, err, direction.ErrUnknownDirection)

		_, err = direction.ParseRange("  ")
		require.ErrorIs(t, err, direction.ErrUnknownDirection)
	})
}

func TestParseRanges(t *testing.T) {
	t.Parallel()

	t.Run("comma separated", func(t *testing.T) {
		t.Parallel()
		rs, err := direction.ParseRanges("O, W")
		require.NoError(t, err)
		require.Len(t, rs, 2)
		assert.InDelta(t, 78.75, rs[0].Start, eps)
		assert.InDelta(t, 258.75, rs[1].Start, eps)
	})

	t.Run("bad parts are reported and skipped", func(t *testing.T) {
		t.Parallel()
		rs, err := direction.ParseRanges("S-SW,,bogus")
		require.ErrorIs(t, err, direction.ErrUnknownDirection)
		require.Len(t, rs, 1)
		assert.Equal(t, direction.Range{Start: 180, Stop: 225}, rs[0])
	})

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		rs, err := direction.ParseRanges("")
		require.NoError(t, err)
		assert.Empty(t, rs)
	})
}

func TestParseCompass(t *testing.T) {
	t.Parallel()

	deg, err := direction.ParseCompass(" ssw ")
	require.NoError(t, err)
	assert.InDelta(t, 202.5, deg, eps)
	assert.False(t, math.IsNaN(deg))
}
