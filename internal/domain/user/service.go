package user

import (
	"context"
	"errors"

	"github.com/frontdesk/frontdesk/internal/platform/auth"
	"github.com/frontdesk/frontdesk/internal/platform/httperr"
)

// ErrInvalidCredentials deliberately hides whether the email or the password
// was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo   Repository
	jwtCfg auth.JWTConfig
}

func NewService(repo Repository, jwtCfg auth.JWTConfig) *Service {
	return &Service{repo: repo, jwtCfg: jwtCfg}
}

// Login verifies the password and issues an access token.
func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if in.Email == "" || in.Password == "" {
		return nil, httperr.Validationf("email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.jwtCfg, u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, User: u}, nil
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password, role string) (*User, error) {
	if name == "" {
		return nil, httperr.Validationf("name is required")
	}
	if email == "" {
		return nil, httperr.Validationf("email is required")
	}
	if len(password) < 8 {
		return nil, httperr.Validationf("password must be at least 8 characters")
	}
	if role == "" {
		role = RoleFrontDesk
	}
	if !validRoles[role] {
		return nil, httperr.Validationf("invalid role: %s", role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
