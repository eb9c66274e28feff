package mocks

import (
	context "context"

	rules "github.com/UnknownOlympus/aeolus/internal/rules"
	mock "github.com/stretchr/testify/mock"
)

// Evaluator is a testify mock for the Evaluator type
type Evaluator struct {
	mock.Mock
}

// Evaluate provides a mock function with given fields: ctx, fact
func (_m *Evaluator) Evaluate(ctx context.Context, fact rules.Fact) (rules.Decision, error) {
	ret := _m.Called(ctx, fact)

	if len(ret) == 0 {
		panic("no return value specified for Evaluate")
	}

	var r0 rules.Decision
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, rules.Fact) (rules.Decision, error)); ok {
		return rf(ctx, fact)
	}
	if rf, ok := ret.Get(0).(func(context.Context, rules.Fact) rules.Decision); ok {
		r0 = rf(ctx, fact)
	} else {
		r0 = ret.Get(0).(rules.Decision)
	}

	if rf, ok := ret.Get(1).(func(context.Context, rules.Fact) error); ok {
		r1 = rf(ctx, fact)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewEvaluator creates a new instance of Evaluator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewEvaluator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Evaluator {
	mock := &Evaluator{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
