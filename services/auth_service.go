package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
	"github.com/blazegg/tournament-hub/utils"
)

// AuthService отвечает за регистрацию и проверку учётных данных.
// Выпуск токена остаётся на HTTP-слое.
type AuthService struct {
	store repositories.Storage
}

func NewAuthService(store repositories.Storage) *AuthService {
	return &AuthService{store: store}
}

type RegisterInput struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       string  `json:"email"`
	DisplayName *string `json:"displayName"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	if input.Username == "" || input.Email == "" {
		return nil, ErrValidationFailed
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:    input.Username,
		Password:    hash,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		PhoneNumber: input.PhoneNumber,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUserUsernameConflict
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(creds.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
