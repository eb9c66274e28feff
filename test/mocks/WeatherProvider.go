package mocks

import (
	context "context"

	models "github.com/UnknownOlympus/aeolus/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// WeatherProvider is a testify mock for the Provider type
type WeatherProvider struct {
	mock.Mock
}

// Observe provides a mock function with given fields: ctx, coords
func (_m *WeatherProvider) Observe(ctx context.Context, coords models.Coordinates) (*models.WindObservation, error) {
	ret := _m.Called(ctx, coords)

	if len(ret) == 0 {
		panic("no return value specified for Observe")
	}

	var r0 *models.WindObservation
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates) (*models.WindObservation, error)); ok {
		return rf(ctx, coords)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinates) *models.WindObservation); ok {
		r0 = rf(ctx, coords)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.WindObservation)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.Coordinates) error); ok {
		r1 = rf(ctx, coords)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewWeatherProvider creates a new instance of WeatherProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewWeatherProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *WeatherProvider {
	mock := &WeatherProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
