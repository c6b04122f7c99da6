package service

import (
	"context"

	"github.com/yndnr/spot-go/internal/cli/connection"
	"github.com/yndnr/spot-go/internal/core/domain"
)

// AuthService calls the /auth routes.
type AuthService struct {
	api connection.Doer
}

// NewAuthService creates an AuthService.
func NewAuthService(api connection.Doer) *AuthService {
	return &AuthService{api: api}
}

// Login exchanges credentials for a token and the user's profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	return connection.Post[domain.LoginResult](ctx, s.api, "/auth/login", domain.Credentials{
		Email:    email,
		Password: password,
	})
}

// Profile returns the user the current bearer token belongs to.
func (s *AuthService) Profile(ctx context.Context) (domain.User, error) {
	return connection.Get[domain.User](ctx, s.api, "/auth/profile")
}
