package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilityassist/internal/auth"
	"facilityassist/internal/model"
	repoMocks "facilityassist/internal/repository/mocks"
)

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	unitID := int64(1)

	mUsers := new(repoMocks.MockUserRepository)
	mUnits := new(repoMocks.MockUnitRepository)
	svc := NewUserService(mUsers, mUnits)

	mUsers.On("List", ctx).Return([]model.User{
		{ID: 1, Username: "admin", Name: "시스템 관리자", Role: model.RoleAdmin, PasswordHash: "secret"},
		{ID: 2, Username: "1wing_manager", Role: model.RoleManager, UnitID: &unitID},
	}, nil)
	mUnits.On("FindByID", ctx, unitID).Return(&model.Unit{ID: 1, Name: "제1전투비행단", Code: "1WING"}, nil)

	users, err := svc.List(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Nil(t, users[0].Unit)
	require.NotNil(t, users[1].Unit)
	assert.Equal(t, "1WING", users[1].Unit.Code)
	mUsers.AssertExpectations(t)
	mUnits.AssertExpectations(t)
}

func TestUserService_Managers(t *testing.T) {
	ctx := context.Background()
	unitID := int64(1)

	mUsers := new(repoMocks.MockUserRepository)
	mUnits := new(repoMocks.MockUnitRepository)
	svc := NewUserService(mUsers, mUnits)

	mUsers.On("ListByRole", ctx, model.RoleManager).Return([]model.User{
		{ID: 2, Username: "1wing_manager", Role: model.RoleManager, UnitID: &unitID},
	}, nil)
	mUnits.On("FindByID", ctx, unitID).Return(&model.Unit{ID: 1, Name: "제1전투비행단", Code: "1WING"}, nil)

	managers, err := svc.Managers(ctx)

	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, model.RoleManager, managers[0].Role)
	mUsers.AssertExpectations(t)
}

func TestUserService_Info(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		mUnits := new(repoMocks.MockUnitRepository)
		svc := NewUserService(mUsers, mUnits)

		mUsers.On("FindByID", ctx, int64(1)).Return(&model.User{
			ID: 1, Username: "admin", Name: "시스템 관리자", Role: model.RoleAdmin,
		}, nil)

		info, err := svc.Info(ctx, &auth.Principal{ID: 1, Username: "admin"})

		require.NoError(t, err)
		assert.Equal(t, "admin", info.Username)
		assert.Nil(t, info.Unit)
	})

	t.Run("no principal", func(t *testing.T) {
		svc := NewUserService(new(repoMocks.MockUserRepository), new(repoMocks.MockUnitRepository))

		info, err := svc.Info(ctx, nil)

		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Nil(t, info)
	})

	t.Run("account removed since login", func(t *testing.T) {
		mUsers := new(repoMocks.MockUserRepository)
		svc := NewUserService(mUsers, new(repoMocks.MockUnitRepository))

		mUsers.On("FindByID", ctx, int64(9)).Return(nil, sql.ErrNoRows)

		info, err := svc.Info(ctx, &auth.Principal{ID: 9})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, info)
	})

	t.Run("unit lookup error", func(t *testing.T) {
		unitID := int64(1)
		mUsers := new(repoMocks.MockUserRepository)
		mUnits := new(repoMocks.MockUnitRepository)
		svc := NewUserService(mUsers, mUnits)

		mUsers.On("FindByID", ctx, int64(2)).Return(&model.User{ID: 2, UnitID: &unitID}, nil)
		mUnits.On("FindByID", ctx, unitID).Return(nil, errors.New("db fail"))

		info, err := svc.Info(ctx, &auth.Principal{ID: 2})

		assert.Error(t, err)
		assert.Nil(t, info)
	})
}
