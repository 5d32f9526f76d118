package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"facilityassist/internal/auth"
	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// UnitInfo is the unit block embedded in user responses.
type UnitInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// UserInfo is the sanitized user representation; the credential hash is
// never part of it.
type UserInfo struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name"`
	Role      model.Role `json:"role"`
	Unit      *UnitInfo  `json:"unit,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// UserService defines the read-only use cases around user accounts.
type UserService interface {
	// List returns all users.
	List(ctx context.Context) ([]UserInfo, error)

	// Managers returns all users with the MANAGER role.
	Managers(ctx context.Context) ([]UserInfo, error)

	// Info resolves the full user record behind a principal, including the
	// unit block.
	Info(ctx context.Context, principal *auth.Principal) (*UserInfo, error)
}

type userService struct {
	users repository.UserRepository
	units repository.UnitRepository
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository, units repository.UnitRepository) UserService {
	return &userService{users: users, units: units}
}

func (s *userService) List(ctx context.Context) ([]UserInfo, error) {
	items, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toUserInfos(ctx, items)
}

func (s *userService) Managers(ctx context.Context) ([]UserInfo, error) {
	items, err := s.users.ListByRole(ctx, model.RoleManager)
	if err != nil {
		return nil, err
	}
	return s.toUserInfos(ctx, items)
}

func (s *userService) Info(ctx context.Context, principal *auth.Principal) (*UserInfo, error) {
	if principal == nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info, err := s.toUserInfo(ctx, user)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (s *userService) toUserInfos(ctx context.Context, items []model.User) ([]UserInfo, error) {
	out := make([]UserInfo, 0, len(items))
	for _, u := range items {
		info, err := s.toUserInfo(ctx, &u)
		if err != nil {
			return nil, err
		}
		out = append(out, *info)
	}
	return out, nil
}

func (s *userService) toUserInfo(ctx context.Context, u *model.User) (*UserInfo, error) {
	info := &UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.UnitID != nil {
		unit, err := s.units.FindByID(ctx, *u.UnitID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return info, nil
			}
			return nil, err
		}
		info.Unit = &UnitInfo{ID: unit.ID, Name: unit.Name, Code: unit.Code}
	}
	return info, nil
}
