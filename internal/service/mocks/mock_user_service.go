package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facilityassist/internal/auth"
	"facilityassist/internal/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]service.UserInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.UserInfo), args.Error(1)
}

func (m *MockUserService) Managers(ctx context.Context) ([]service.UserInfo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.UserInfo), args.Error(1)
}

func (m *MockUserService) Info(ctx context.Context, principal *auth.Principal) (*service.UserInfo, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UserInfo), args.Error(1)
}
