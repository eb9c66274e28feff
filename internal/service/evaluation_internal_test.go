package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/aeolus/internal/direction"
	"github.com/UnknownOlympus/aeolus/internal/metrics"
	"github.com/UnknownOlympus/aeolus/internal/models"
	"github.com/UnknownOlympus/aeolus/internal/rules"
	"github.com/UnknownOlympus/aeolus/internal/site"
	"github.com/UnknownOlympus/aeolus/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func launch(name string, lat, lon, start, stop float64) models.Launch {
	return models.Launch{
		Location: models.Location{
			Coordinates: models.Coordinates{Latitude: lat, Longitude: lon},
			Name:        name,
		},
		Elevation: 1000,
		Direction: direction.Range{Start: start, Stop: stop},
		SiteType:  models.SiteTypeHang,
	}
}

func twoLaunchSite() site.Site {
	s := site.New("Tegelberg", "DE")
	s.ID = 5
	s, _ = s.AddLaunch(launch("West", 47.56, 10.77, 225, 270))
	s, _ = s.AddLaunch(launch("East", 47.56, 10.78, 45, 90))
	return s
}

type fixture struct {
	repo      *mocks.Interface
	weather   *mocks.WeatherProvider
	evaluator *mocks.Evaluator
	metrics   *metrics.Metrics
	service   *EvaluationService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		repo:      mocks.NewInterface(t),
		weather:   mocks.NewWeatherProvider(t),
		evaluator: mocks.NewEvaluator(t),
		metrics:   metrics.NewMetrics(prometheus.NewRegistry()),
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	f.service = NewEvaluationService(logger, f.repo, f.weather, f.evaluator, f.metrics, 2, time.Second)
	return f
}

func TestProcessSites(t *testing.T) {
	ctx := t.Context()
	wind := &models.WindObservation{Bearing: 250, Speed: 4, Gust: 7.5}
	position := models.Coordinates{Latitude: 47.56, Longitude: 10.77}

	t.Run("successful processing", func(t *testing.T) {
		f := newFixture(t)
		s := twoLaunchSite()
		keys := s.LaunchKeys()
		westFact := rules.BuildFact(s.Launches()[0], 250, 4)
		eastFact := rules.BuildFact(s.Launches()[1], 250, 4)
		flyable := rules.Decision{Classification: rules.Flyable, Score: 9}
		dangerous := rules.Decision{Classification: rules.NotFlyable}

		f.repo.On("FetchSites", ctx).Return([]site.Site{s}, nil).Once()
		f.weather.On("Observe", ctx, position).Return(wind, nil).Once()
		f.evaluator.On("Evaluate", ctx, westFact).Return(flyable, nil).Once()
		f.evaluator.On("Evaluate", ctx, eastFact).Return(dangerous, nil).Once()
		f.repo.On("RecordDecision", ctx, int64(5), keys[0], *wind, westFact, flyable).Return(nil).Once()
		f.repo.On("RecordDecision", ctx, int64(5), keys[1], *wind, eastFact, dangerous).Return(nil).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.Evaluations.WithLabelValues("flyable")), 1e-9)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.Evaluations.WithLabelValues("not_flyable")), 1e-9)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.SitesProcessed), 1e-9)
		assert.InDelta(t, 0.0, testutil.ToFloat64(f.metrics.ActiveWorkers), 1e-9)
	})

	t.Run("fetch sites returns error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchSites", ctx).Return(nil, assert.AnError).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("repository")), 1e-9)
	})

	t.Run("fetch sites returns empty list", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchSites", ctx).Return([]site.Site{}, nil).Once()

		f.service.processSites(ctx)
	})

	t.Run("weather returns error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchSites", ctx).Return([]site.Site{twoLaunchSite()}, nil).Once()
		f.weather.On("Observe", ctx, position).Return(nil, assert.AnError).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("weather")), 1e-9)
	})

	t.Run("evaluator error does not stop other launches", func(t *testing.T) {
		f := newFixture(t)
		s := twoLaunchSite()
		eastFact := rules.BuildFact(s.Launches()[1], 250, 4)
		decision := rules.Decision{Classification: rules.Marginal}

		f.repo.On("FetchSites", ctx).Return([]site.Site{s}, nil).Once()
		f.weather.On("Observe", ctx, position).Return(wind, nil).Once()
		f.evaluator.On("Evaluate", ctx, rules.BuildFact(s.Launches()[0], 250, 4)).
			Return(rules.Decision{}, assert.AnError).Once()
		f.evaluator.On("Evaluate", ctx, eastFact).Return(decision, nil).Once()
		f.repo.On("RecordDecision", ctx, int64(5), s.LaunchKeys()[1], *wind, eastFact, decision).Return(nil).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("evaluator")), 1e-9)
	})

	t.Run("record decision returns error", func(t *testing.T) {
		f := newFixture(t)
		s := site.New("Single", "")
		s.ID = 9
		s, key := s.AddLaunch(launch("Only", 47.56, 10.77, 0, 90))
		fact := rules.BuildFact(s.Launches()[0], 250, 4)
		decision := rules.Decision{Classification: rules.NotFlyable}

		f.repo.On("FetchSites", ctx).Return([]site.Site{s}, nil).Once()
		f.weather.On("Observe", ctx, position).Return(wind, nil).Once()
		f.evaluator.On("Evaluate", ctx, fact).Return(decision, nil).Once()
		f.repo.On("RecordDecision", ctx, int64(9), key, *wind, fact, decision).Return(assert.AnError).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("repository")), 1e-9)
	})

	t.Run("sites outside the search area are skipped", func(t *testing.T) {
		f := newFixture(t)
		f.service.RestrictTo(models.Coordinates{Latitude: 50.45, Longitude: 30.52}, 100)
		f.repo.On("FetchSites", ctx).Return([]site.Site{twoLaunchSite()}, nil).Once()

		f.service.processSites(ctx)
	})

	t.Run("sites without launches are skipped", func(t *testing.T) {
		f := newFixture(t)
		s, _ := site.New("Landing only", "").AddLanding(models.Landing{
			Location: models.Location{Coordinates: position, Name: "Field"},
		})
		f.repo.On("FetchSites", ctx).Return([]site.Site{s}, nil).Once()

		f.service.processSites(ctx)

		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.SitesProcessed), 1e-9)
	})

	t.Run("start context cancelled", func(t *testing.T) {
		f := newFixture(t)
		tctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
		defer cancel()

		f.service.Run(tctx)
	})
}

func TestSites(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	near := twoLaunchSite()
	far, _ := site.New("Far", "").AddLaunch(launch("L", 40, 0, 0, 90))

	f.repo.On("FetchSites", ctx).Return([]site.Site{near, far}, nil).Twice()

	all, err := f.service.Sites(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	f.service.RestrictTo(models.Coordinates{Latitude: 47.5, Longitude: 10.7}, 50)
	nearby, err := f.service.Sites(ctx)
	require.NoError(t, err)
	require.Len(t, nearby, 1)
	assert.Equal(t, "Tegelberg", nearby[0].Name)
}

func TestImportSites(t *testing.T) {
	ctx := t.Context()

	t.Run("skips stored sites", func(t *testing.T) {
		f := newFixture(t)
		stored := twoLaunchSite()
		fresh := site.New("Brauneck", "DE")
		duplicate := site.New("Tegelberg", "DE")

		f.repo.On("FetchSites", ctx).Return([]site.Site{stored}, nil).Once()
		f.repo.On("SaveSite", ctx, fresh).Return(fresh, nil).Once()

		saved, err := f.service.ImportSites(ctx, []site.Site{duplicate, fresh, fresh})

		require.NoError(t, err)
		assert.Equal(t, 1, saved)
	})

	t.Run("save errors are counted and skipped", func(t *testing.T) {
		f := newFixture(t)
		broken := site.New("Broken", "")
		fine := site.New("Fine", "")

		f.repo.On("FetchSites", ctx).Return(nil, nil).Once()
		f.repo.On("SaveSite", ctx, broken).Return(broken, assert.AnError).Once()
		f.repo.On("SaveSite", ctx, fine).Return(fine, nil).Once()

		saved, err := f.service.ImportSites(ctx, []site.Site{broken, fine})

		require.NoError(t, err)
		assert.Equal(t, 1, saved)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("repository")), 1e-9)
	})

	t.Run("fetch error", func(t *testing.T) {
		f := newFixture(t)
		f.repo.On("FetchSites", ctx).Return(nil, assert.AnError).Once()

		_, err := f.service.ImportSites(ctx, []site.Site{site.New("x", "")})

		require.ErrorIs(t, err, assert.AnError)
		f.repo.AssertNotCalled(t, "SaveSite", mock.Anything, mock.Anything)
	})
}

func TestRestrictToPlace(t *testing.T) {
	ctx := t.Context()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		places := mocks.NewLocatorProvider(t)
		home := &models.Coordinates{Latitude: 47.57, Longitude: 10.74}
		far, _ := site.New("Far", "").AddLaunch(launch("L", 40, 0, 0, 90))

		places.On("Locate", ctx, "Schwangau").Return(home, nil).Once()
		f.repo.On("FetchSites", ctx).Return([]site.Site{twoLaunchSite(), far}, nil).Once()

		require.NoError(t, f.service.RestrictToPlace(ctx, places, "Schwangau", 30))

		sites, err := f.service.Sites(ctx)
		require.NoError(t, err)
		require.Len(t, sites, 1)
		assert.Equal(t, "Tegelberg", sites[0].Name)
	})

	t.Run("locator error keeps all sites", func(t *testing.T) {
		f := newFixture(t)
		places := mocks.NewLocatorProvider(t)

		places.On("Locate", ctx, "Atlantis").Return(nil, assert.AnError).Once()

		err := f.service.RestrictToPlace(ctx, places, "Atlantis", 30)

		require.ErrorIs(t, err, assert.AnError)
		assert.Nil(t, f.service.home)
	})
}

func TestImportNearby(t *testing.T) {
	ctx := t.Context()
	home := models.Coordinates{Latitude: 47.57, Longitude: 10.74}

	t.Run("imports sites found around home", func(t *testing.T) {
		f := newFixture(t)
		source := mocks.NewSiteSource(t)
		fresh := site.New("Buchenberg", "DE")
		f.service.RestrictTo(home, 30)

		source.On("Search", ctx, home, 30.0).Return([]site.Site{fresh}, nil).Once()
		f.repo.On("FetchSites", ctx).Return([]site.Site{twoLaunchSite()}, nil).Once()
		f.repo.On("SaveSite", ctx, fresh).Return(fresh, nil).Once()

		saved, err := f.service.ImportNearby(ctx, source)

		require.NoError(t, err)
		assert.Equal(t, 1, saved)
	})

	t.Run("source error skips the source", func(t *testing.T) {
		f := newFixture(t)
		source := mocks.NewSiteSource(t)
		f.service.RestrictTo(home, 30)

		source.On("Search", ctx, home, 30.0).Return(nil, assert.AnError).Once()

		saved, err := f.service.ImportNearby(ctx, source)

		require.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, saved)
		assert.InDelta(t, 1.0, testutil.ToFloat64(f.metrics.CollaboratorErrors.WithLabelValues("sites")), 1e-9)
		f.repo.AssertNotCalled(t, "FetchSites", mock.Anything)
	})

	t.Run("no search area", func(t *testing.T) {
		f := newFixture(t)
		source := mocks.NewSiteSource(t)

		saved, err := f.service.ImportNearby(ctx, source)

		require.NoError(t, err)
		assert.Zero(t, saved)
		source.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}
