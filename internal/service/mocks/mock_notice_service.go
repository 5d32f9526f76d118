package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facilityassist/internal/auth"
	"facilityassist/internal/service"
)

type MockNoticeService struct {
	mock.Mock
}

func (m *MockNoticeService) List(ctx context.Context, page, size int) (*service.NoticeListResult, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoticeListResult), args.Error(1)
}

func (m *MockNoticeService) ListAll(ctx context.Context) (*service.NoticeListResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoticeListResult), args.Error(1)
}

func (m *MockNoticeService) Get(ctx context.Context, id int64) (*service.NoticeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoticeDetail), args.Error(1)
}

func (m *MockNoticeService) Create(ctx context.Context, principal *auth.Principal, req service.CreateNoticeRequest) (*service.NoticeDetail, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NoticeDetail), args.Error(1)
}
