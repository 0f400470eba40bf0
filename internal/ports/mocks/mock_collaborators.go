package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/avomont/lifeline/internal/domain"
)

type MockLocationProvider struct {
	mock.Mock
}

func NewMockLocationProvider(t *testing.T) *MockLocationProvider {
	m := &MockLocationProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLocationProvider) Current(ctx context.Context) (domain.LocationFix, error) {
	args := m.Called(ctx)
	fix, _ := args.Get(0).(domain.LocationFix)
	return fix, args.Error(1)
}

func (m *MockLocationProvider) EXPECT() *MockLocationProviderExpecter {
	return &MockLocationProviderExpecter{mock: &m.Mock}
}

type MockLocationProviderExpecter struct {
	mock *mock.Mock
}

func (e *MockLocationProviderExpecter) Current(ctx interface{}) *mock.Call {
	return e.mock.On("Current", ctx)
}

type MockContactNotifier struct {
	mock.Mock
}

func NewMockContactNotifier(t *testing.T) *MockContactNotifier {
	m := &MockContactNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockContactNotifier) Notify(ctx context.Context, profile domain.MedicalProfile, session domain.EmergencySession, fix *domain.LocationFix) ([]string, error) {
	args := m.Called(ctx, profile, session, fix)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockContactNotifier) EXPECT() *MockContactNotifierExpecter {
	return &MockContactNotifierExpecter{mock: &m.Mock}
}

type MockContactNotifierExpecter struct {
	mock *mock.Mock
}

func (e *MockContactNotifierExpecter) Notify(ctx, profile, session, fix interface{}) *mock.Call {
	return e.mock.On("Notify", ctx, profile, session, fix)
}

type MockClock struct {
	mock.Mock
}

func NewMockClock(t *testing.T) *MockClock {
	m := &MockClock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockClock) Now() time.Time {
	args := m.Called()
	now, _ := args.Get(0).(time.Time)
	return now
}

func (m *MockClock) EXPECT() *MockClockExpecter {
	return &MockClockExpecter{mock: &m.Mock}
}

type MockClockExpecter struct {
	mock *mock.Mock
}

func (e *MockClockExpecter) Now() *mock.Call {
	return e.mock.On("Now")
}
