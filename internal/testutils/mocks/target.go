// Package mocks provides testify mocks of the timelock interfaces with typed expecters.
package mocks

import (
	context "context"

	mock "github.com/stretchr/testify/mock"

	types "github.com/smartcontractkit/timelock/types"
)

// Target is a mock of timelock.Target.
type Target struct {
	mock.Mock
}

type Target_Expecter struct {
	mock *mock.Mock
}

func (_m *Target) EXPECT() *Target_Expecter {
	return &Target_Expecter{mock: &_m.Mock}
}

// Invoke provides a mock function with given fields: ctx, msg
func (_m *Target) Invoke(ctx context.Context, msg types.Message) error {
	ret := _m.Called(ctx, msg)

	if len(ret) == 0 {
		panic("no return value specified for Invoke")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, types.Message) error); ok {
		r0 = rf(ctx, msg)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Target_Invoke_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Invoke'
type Target_Invoke_Call struct {
	*mock.Call
}

// Invoke is a helper method to define mock.On call
//   - ctx context.Context
//   - msg types.Message
func (_e *Target_Expecter) Invoke(ctx interface{}, msg interface{}) *Target_Invoke_Call {
	return &Target_Invoke_Call{Call: _e.mock.On("Invoke", ctx, msg)}
}

func (_c *Target_Invoke_Call) Run(run func(ctx context.Context, msg types.Message)) *Target_Invoke_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(types.Message))
	})
	return _c
}

func (_c *Target_Invoke_Call) Return(_a0 error) *Target_Invoke_Call {
	_c.Call.Return(_a0)
	return _c
}

func (_c *Target_Invoke_Call) RunAndReturn(run func(context.Context, types.Message) error) *Target_Invoke_Call {
	_c.Call.Return(run)
	return _c
}

// NewTarget creates a new instance of Target. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTarget(t interface {
	mock.TestingT
	Cleanup(func())
}) *Target {
	mock := &Target{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
