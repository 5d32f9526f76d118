package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facilityassist/internal/model"
)

type MockUnitService struct {
	mock.Mock
}

func (m *MockUnitService) List(ctx context.Context) ([]model.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Unit), args.Error(1)
}
