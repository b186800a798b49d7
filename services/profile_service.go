package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
)

type ProfileService struct {
	store repositories.Storage
}

func NewProfileService(store repositories.Storage) *ProfileService {
	return &ProfileService{store: store}
}

type CreateProfileInput struct {
	UserID         int                   `json:"userId"`
	Level          int                   `json:"level"`
	Rank           string                `json:"rank"`
	Verified       bool                  `json:"verified"`
	TournamentsWon int                   `json:"tournamentsWon"`
	Matches        int                   `json:"matches"`
	Tournaments    int                   `json:"tournaments"`
	Kills          int                   `json:"kills"`
	Stats          *models.ProfileStats  `json:"stats"`
	Achievements   []models.Achievement  `json:"achievements"`
}

func (s *ProfileService) CreateProfile(ctx context.Context, input CreateProfileInput) (*models.UserProfile, error) {
	if _, err := s.store.GetUser(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	profile := &models.UserProfile{
		UserID:         input.UserID,
		Level:          input.Level,
		Rank:           input.Rank,
		Verified:       input.Verified,
		TournamentsWon: input.TournamentsWon,
		Matches:        input.Matches,
		Tournaments:    input.Tournaments,
		Kills:          input.Kills,
		Stats:          input.Stats,
		Achievements:   input.Achievements,
	}
	if profile.Level == 0 {
		profile.Level = 1
	}
	if profile.Rank == "" {
		profile.Rank = "Rookie"
	}

	if err := s.store.CreateUserProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	profile, err := s.store.GetUserProfileByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

type CreateActivityInput struct {
	UserID    int     `json:"userId"`
	Text      string  `json:"text"`
	Icon      *string `json:"icon"`
	IconColor *string `json:"iconColor"`
}

func (s *ProfileService) CreateActivity(ctx context.Context, input CreateActivityInput) (*models.UserActivity, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrValidationFailed
	}
	if _, err := s.store.GetUser(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	activity := &models.UserActivity{
		UserID:    input.UserID,
		Text:      input.Text,
		Icon:      input.Icon,
		IconColor: input.IconColor,
	}
	if err := s.store.CreateUserActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create user activity: %w", err)
	}
	return activity, nil
}

// ListActivities возвращает ленту пользователя по убыванию времени.
func (s *ProfileService) ListActivities(ctx context.Context, userID int) ([]models.UserActivity, error) {
	return s.store.ListUserActivities(ctx, userID)
}
