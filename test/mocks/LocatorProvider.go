package mocks

import (
	context "context"

	models "github.com/UnknownOlympus/aeolus/internal/models"
	mock "github.com/stretchr/testify/mock"
)

// LocatorProvider is a testify mock for the Provider type
type LocatorProvider struct {
	mock.Mock
}

// Locate provides a mock function with given fields: ctx, place
func (_m *LocatorProvider) Locate(ctx context.Context, place string) (*models.Coordinates, error) {
	ret := _m.Called(ctx, place)

	if len(ret) == 0 {
		panic("no return value specified for Locate")
	}

	var r0 *models.Coordinates
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*models.Coordinates, error)); ok {
		return rf(ctx, place)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.Coordinates); ok {
		r0 = rf(ctx, place)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Coordinates)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, place)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewLocatorProvider creates a new instance of LocatorProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewLocatorProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *LocatorProvider {
	mock := &LocatorProvider{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
