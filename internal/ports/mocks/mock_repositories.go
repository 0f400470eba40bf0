package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/avomont/lifeline/internal/domain"
)

type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockSessionRepository) Save(ctx context.Context, session domain.EmergencySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Load(ctx context.Context) (domain.EmergencySession, error) {
	args := m.Called(ctx)
	session, _ := args.Get(0).(domain.EmergencySession)
	return session, args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) EXPECT() *MockSessionRepositoryExpecter {
	return &MockSessionRepositoryExpecter{mock: &m.Mock}
}

type MockSessionRepositoryExpecter struct {
	mock *mock.Mock
}

func (e *MockSessionRepositoryExpecter) Save(ctx interface{}, session interface{}) *mock.Call {
	return e.mock.On("Save", ctx, session)
}

func (e *MockSessionRepositoryExpecter) Load(ctx interface{}) *mock.Call {
	return e.mock.On("Load", ctx)
}

func (e *MockSessionRepositoryExpecter) Delete(ctx interface{}) *mock.Call {
	return e.mock.On("Delete", ctx)
}

type MockProfileRepository struct {
	mock.Mock
}

func NewMockProfileRepository(t *testing.T) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockProfileRepository) Save(ctx context.Context, profile domain.MedicalProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Load(ctx context.Context) (domain.MedicalProfile, error) {
	args := m.Called(ctx)
	profile, _ := args.Get(0).(domain.MedicalProfile)
	return profile, args.Error(1)
}

func (m *MockProfileRepository) EXPECT() *MockProfileRepositoryExpecter {
	return &MockProfileRepositoryExpecter{mock: &m.Mock}
}

type MockProfileRepositoryExpecter struct {
	mock *mock.Mock
}

func (e *MockProfileRepositoryExpecter) Save(ctx interface{}, profile interface{}) *mock.Call {
	return e.mock.On("Save", ctx, profile)
}

func (e *MockProfileRepositoryExpecter) Load(ctx interface{}) *mock.Call {
	return e.mock.On("Load", ctx)
}

type MockAuditLog struct {
	mock.Mock
}

func NewMockAuditLog(t *testing.T) *MockAuditLog {
	m := &MockAuditLog{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditLog) Append(ctx context.Context, entry domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLog) Entries(ctx context.Context) ([]domain.AuditEntry, error) {
	args := m.Called(ctx)
	entries, _ := args.Get(0).([]domain.AuditEntry)
	return entries, args.Error(1)
}

func (m *MockAuditLog) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAuditLog) EXPECT() *MockAuditLogExpecter {
	return &MockAuditLogExpecter{mock: &m.Mock}
}

type MockAuditLogExpecter struct {
	mock *mock.Mock
}

func (e *MockAuditLogExpecter) Append(ctx interface{}, entry interface{}) *mock.Call {
	return e.mock.On("Append", ctx, entry)
}

func (e *MockAuditLogExpecter) Entries(ctx interface{}) *mock.Call {
	return e.mock.On("Entries", ctx)
}

func (e *MockAuditLogExpecter) Clear(ctx interface{}) *mock.Call {
	return e.mock.On("Clear", ctx)
}
