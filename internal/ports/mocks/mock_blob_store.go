package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func NewMockBlobStore(t *testing.T) *MockBlobStore {
	m := &MockBlobStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Put(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) EXPECT() *MockBlobStoreExpecter {
	return &MockBlobStoreExpecter{mock: &m.Mock}
}

type MockBlobStoreExpecter struct {
	mock *mock.Mock
}

func (e *MockBlobStoreExpecter) Get(ctx interface{}, key interface{}) *mock.Call {
	return e.mock.On("Get", ctx, key)
}

func (e *MockBlobStoreExpecter) Put(ctx interface{}, key interface{}, value interface{}) *mock.Call {
	return e.mock.On("Put", ctx, key, value)
}

func (e *MockBlobStoreExpecter) Delete(ctx interface{}, key interface{}) *mock.Call {
	return e.mock.On("Delete", ctx, key)
}
