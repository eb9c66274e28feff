package mocks

import (
	context "context"

	models "github.com/UnknownOlympus/aeolus/internal/models"
	rules "github.com/UnknownOlympus/aeolus/internal/rules"
	site "github.com/UnknownOlympus/aeolus/internal/site"
	mock "github.com/stretchr/testify/mock"
)

// Interface is a testify mock for the Interface type
type Interface struct {
	mock.Mock
}

// FetchSites provides a mock function with given fields: ctx
func (_m *Interface) FetchSites(ctx context.Context) ([]site.Site, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for FetchSites")
	}

	var r0 []site.Site
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]site.Site, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []site.Site); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]site.Site)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RecordDecision provides a mock function with given fields: ctx, siteID, key, wind, fact, decision
func (_m *Interface) RecordDecision(ctx context.Context, siteID int64, key site.Key, wind models.WindObservation, fact rules.Fact, decision rules.Decision) error {
	ret := _m.Called(ctx, siteID, key, wind, fact, decision)

	if len(ret) == 0 {
		panic("no return value specified for RecordDecision")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, site.Key, models.WindObservation, rules.Fact, rules.Decision) error); ok {
		r0 = rf(ctx, siteID, key, wind, fact, decision)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// SaveSite provides a mock function with given fields: ctx, s
func (_m *Interface) SaveSite(ctx context.Context, s site.Site) (site.Site, error) {
	ret := _m.Called(ctx, s)

	if len(ret) == 0 {
		panic("no return value specified for SaveSite")
	}

	var r0 site.Site
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, site.Site) (site.Site, error)); ok {
		return rf(ctx, s)
	}
	if rf, ok := ret.Get(0).(func(context.Context, site.Site) site.Site); ok {
		r0 = rf(ctx, s)
	} else {
		r0 = ret.Get(0).(site.Site)
	}

	if rf, ok := ret.Get(1).(func(context.Context, site.Site) error); ok {
		r1 = rf(ctx, s)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewInterface creates a new instance of Interface. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	mock := &Interface{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
