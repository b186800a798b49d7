package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
	"github.com/blazegg/tournament-hub/storage"
)

type TeamService struct {
	store    repositories.Storage
	uploader storage.FileUploader // nil, когда загрузки не сконфигурированы
}

func NewTeamService(store repositories.Storage, uploader storage.FileUploader) *TeamService {
	return &TeamService{store: store, uploader: uploader}
}

type CreateTeamInput struct {
	Name              string   `json:"name"`
	Captain           int      `json:"captain"`
	TournamentsPlayed int      `json:"tournamentsPlayed"`
	Badges            []string `json:"badges"`
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}

	if input.Captain != 0 {
		if _, err := s.store.GetUser(ctx, input.Captain); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to check captain: %w", err)
		}
	}

	team := &models.Team{
		Name:              input.Name,
		Captain:           input.Captain,
		TournamentsPlayed: input.TournamentsPlayed,
		Badges:            input.Badges,
	}
	if err := s.store.CreateTeam(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *TeamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.store.GetTeam(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

func (s *TeamService) List(ctx context.Context) ([]models.Team, error) {
	return s.store.ListTeams(ctx)
}

type AddTeamMemberInput struct {
	TeamID int `json:"teamId"`
	UserID int `json:"userId"`
}

func (s *TeamService) AddMember(ctx context.Context, input AddTeamMemberInput) (*models.TeamMember, error) {
	if _, err := s.store.GetTeam(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team: %w", err)
	}
	if _, err := s.store.GetUser(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	member := &models.TeamMember{TeamID: input.TeamID, UserID: input.UserID}
	if err := s.store.AddTeamMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}
	return member, nil
}

func (s *TeamService) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	return s.store.ListTeamMembers(ctx, teamID)
}

// UploadLogo загружает логотип команды во внешнее хранилище и сохраняет
// публичный URL.
func (s *TeamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	team, err := s.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo", team.ID)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.store.UpdateTeamLogo(ctx, team.ID, &result.PublicURL); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to save team logo: %w", err)
	}

	team.Logo = &result.PublicURL
	return team, nil
}
