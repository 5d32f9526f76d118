package service

import (
	"context"
	"database/sql"
	"errors"

	"facilityassist/internal/auth"
	"facilityassist/internal/model"
	"facilityassist/internal/repository"
)

// LoginResult carries the resolved principal plus the signed access token.
type LoginResult struct {
	Principal auth.Principal
	Token     string
}

// AuthService resolves identities from credentials and tokens.
type AuthService interface {
	// Login verifies a username/password pair. Unknown users and wrong
	// passwords both return ErrInvalidCredentials so callers cannot probe
	// for valid usernames.
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// ResolvePrincipal loads the principal for a previously authenticated
	// user ID (used by the auth middleware after token validation).
	ResolvePrincipal(ctx context.Context, userID int64) (*auth.Principal, error)
}

type authService struct {
	users  repository.UserRepository
	units  repository.UnitRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, units repository.UnitRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, units: units, hasher: hasher, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}

	principal, err := s.principalFor(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Principal: *principal, Token: token}, nil
}

func (s *authService) ResolvePrincipal(ctx context.Context, userID int64) (*auth.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return s.principalFor(ctx, user)
}

func (s *authService) principalFor(ctx context.Context, user *model.User) (*auth.Principal, error) {
	p := &auth.Principal{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Role:     user.Role,
		UnitID:   user.UnitID,
	}
	if user.UnitID != nil {
		unit, err := s.units.FindByID(ctx, *user.UnitID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		if unit != nil {
			p.UnitName = unit.Name
		}
	}
	return p, nil
}
