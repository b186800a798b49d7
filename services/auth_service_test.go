package services

import (
	"context"
	"errors"
	"testing"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(repositories.NewMemStorage())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "player1",
		Password: "password123",
		Email:    "player1@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if user.Password == "password123" {
		t.Fatalf("expected password to be hashed")
	}

	logged, err := svc.Login(ctx, models.Credentials{Email: "player1@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, logged.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(repositories.NewMemStorage())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "p", Password: "short", Email: "p@example.com"}); !errors.Is(err, ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
	if _, err := svc.Register(ctx, RegisterInput{Username: "  ", Password: "password123", Email: "p@example.com"}); !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc := NewAuthService(repositories.NewMemStorage())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "player1", Password: "password123", Email: "player1@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterInput{Username: "player1", Password: "password123", Email: "other@example.com"})
	if !errors.Is(err, ErrUserUsernameConflict) {
		t.Fatalf("expected ErrUserUsernameConflict, got %v", err)
	}

	_, err = svc.Register(ctx, RegisterInput{Username: "other", Password: "password123", Email: "player1@example.com"})
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("expected ErrUserEmailConflict, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewAuthService(repositories.NewMemStorage())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Username: "player1", Password: "password123", Email: "player1@example.com"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, models.Credentials{Email: "player1@example.com", Password: "wrongpass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = svc.Login(ctx, models.Credentials{Email: "nobody@example.com", Password: "password123"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
