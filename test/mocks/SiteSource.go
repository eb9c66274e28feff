package mocks

import (
	context "context"

	models "github.com/UnknownOlympus/aeolus/internal/models"
	site "github.com/UnknownOlympus/aeolus/internal/site"
	mock "github.com/stretchr/testify/mock"
)

// SiteSource is a testify mock for the SiteSource type
type SiteSource struct {
	mock.Mock
}

// Search provides a mock function with given fields: ctx, center, radiusKm
func (_m *SiteSource) Search(ctx context.Context, center models.Coordinates, radiusKm float64) ([]site.Site, error) {
	ret := _m.Called(ctx, center, radiusKm)

	if len(ret) == 0 {
		panic("no return value specified for Search")
	}

	var r0 []site.Site
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, float64) ([]site.Site, error)); ok {
		return rf(ctx, center, radiusKm)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates, float64) []site.Site); ok {
		r0 = rf(ctx, center, radiusKm)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]site.Site)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.Coordinates, float64) error); ok {
		r1 = rf(ctx, center, radiusKm)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewSiteSource creates a new instance of SiteSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewSiteSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *SiteSource {
	mock := &SiteSource{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
