package service

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"
)

// ErrMissingToken - сервер ответил без токена
var ErrMissingToken = errors.New("ответ сервера не содержит токен")

type AuthService struct {
	api Transport
}

func NewAuthService(api Transport) *AuthService {
	return &AuthService{api: api}
}

// Register - POST /auth/register
func (s *AuthService) Register(ctx context.Context, data models.RegisterRequest) (models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/register", data)
}

// Login - POST /auth/login
func (s *AuthService) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return s.authenticate(ctx, "/auth/login", credentials)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body interface{}) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := s.api.Post(ctx, path, body, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	if resp.Token == "" {
		return models.AuthResponse{}, fmt.Errorf("POST %s: %w", path, ErrMissingToken)
	}
	return resp, nil
}
