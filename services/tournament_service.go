package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// TournamentService инкапсулирует работу с турнирами и процесс регистрации
// команд. Производный participantsCount пересчитывает хранилище при чтении,
// сервис его никогда не трогает.
type TournamentService struct {
	store repositories.Storage
}

func NewTournamentService(store repositories.Storage) *TournamentService {
	return &TournamentService{store: store}
}

type CreateTournamentInput struct {
	Name                  string    `json:"name"`
	Description           string    `json:"description"`
	Format                string    `json:"format"`
	TeamSize              int       `json:"teamSize"`
	MaxParticipants       int       `json:"maxParticipants"`
	EntryFee              int       `json:"entryFee"`
	PrizePool             int       `json:"prizePool"`
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	RegistrationStartDate time.Time `json:"registrationStartDate"`
	RegistrationEndDate   time.Time `json:"registrationEndDate"`
	RegistrationOpen      *bool     `json:"registrationOpen"`
	Rules                 []string  `json:"rules"`
}

func (s *TournamentService) Create(ctx context.Context, createdBy int, input CreateTournamentInput) (*models.Tournament, error) {
	input.Name = strings.TrimSpace(input.Name)

	switch {
	case input.Name == "":
		return nil, ErrTournamentNameRequired
	case input.MaxParticipants <= 0:
		return nil, ErrTournamentInvalidCapacity
	case input.TeamSize <= 0:
		return nil, ErrTournamentInvalidTeamSize
	case !input.EndDate.After(input.StartDate):
		return nil, ErrTournamentInvalidDateRange
	case !input.RegistrationEndDate.After(input.RegistrationStartDate):
		return nil, ErrTournamentInvalidRegDate
	}

	registrationOpen := true
	if input.RegistrationOpen != nil {
		registrationOpen = *input.RegistrationOpen
	}

	tournament := &models.Tournament{
		Name:                  input.Name,
		Slug:                  slug.Make(input.Name),
		Description:           input.Description,
		Format:                input.Format,
		TeamSize:              input.TeamSize,
		MaxParticipants:       input.MaxParticipants,
		EntryFee:              input.EntryFee,
		PrizePool:             input.PrizePool,
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		RegistrationStartDate: input.RegistrationStartDate,
		RegistrationEndDate:   input.RegistrationEndDate,
		RegistrationOpen:      registrationOpen,
		Rules:                 input.Rules,
		CreatedBy:             createdBy,
	}

	if err := s.store.CreateTournament(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *TournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.store.GetTournament(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) GetBySlug(ctx context.Context, slugValue string) (*models.Tournament, error) {
	tournament, err := s.store.GetTournamentBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) List(ctx context.Context) ([]models.Tournament, error) {
	return s.store.ListTournaments(ctx)
}

// UpdateTournamentInput - частичное обновление для административной
// правки; nil-поля не меняются.
type UpdateTournamentInput struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	RegistrationOpen *bool   `json:"registrationOpen"`
	PrizePool        *int    `json:"prizePool"`
	EntryFee         *int    `json:"entryFee"`
	MaxParticipants  *int    `json:"maxParticipants"`
}

func (s *TournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
		tournament.Slug = slug.Make(name)
	}
	if input.Description != nil {
		tournament.Description = *input.Description
	}
	if input.RegistrationOpen != nil {
		tournament.RegistrationOpen = *input.RegistrationOpen
	}
	if input.PrizePool != nil {
		tournament.PrizePool = *input.PrizePool
	}
	if input.EntryFee != nil {
		tournament.EntryFee = *input.EntryFee
	}
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, ErrTournamentInvalidCapacity
		}
		tournament.MaxParticipants = *input.MaxParticipants
	}

	if err := s.store.UpdateTournament(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *TournamentService) Delete(ctx context.Context, id int) error {
	if err := s.store.DeleteTournament(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return nil
}

type RegistrationInput struct {
	TournamentID  int    `json:"tournamentId"`
	TeamID        int    `json:"teamId"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentID     string `json:"paymentId"`
}

// Register записывает команду в турнир. Ёмкость и окно регистрации здесь
// сознательно не проверяются; повторная регистрация той же команды в тот
// же турнир отклоняется.
func (s *TournamentService) Register(ctx context.Context, input RegistrationInput) (*models.TournamentRegistration, error) {
	if _, err := s.store.GetTournament(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}
	if _, err := s.store.GetTeam(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team: %w", err)
	}

	if _, err := s.store.FindRegistration(ctx, input.TournamentID, input.TeamID); err == nil {
		return nil, ErrRegistrationConflict
	} else if !errors.Is(err, repositories.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("failed to check existing registration: %w", err)
	}

	paymentStatus := models.PaymentStatus(input.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = models.PaymentPending
	}
	switch paymentStatus {
	case models.PaymentPending, models.PaymentCompleted, models.PaymentFailed:
	default:
		return nil, ErrInvalidPaymentStatus
	}

	paymentID := input.PaymentID
	if paymentID == "" {
		paymentID = "pay_" + uuid.NewString()
	}

	registration := &models.TournamentRegistration{
		TournamentID:  input.TournamentID,
		TeamID:        input.TeamID,
		PaymentStatus: paymentStatus,
		PaymentID:     paymentID,
	}

	if err := s.store.CreateRegistration(ctx, registration); err != nil {
		if errors.Is(err, repositories.ErrRegistrationConflict) {
			return nil, ErrRegistrationConflict
		}
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}
	return registration, nil
}

func (s *TournamentService) ListRegistrations(ctx context.Context, tournamentID int) ([]models.TournamentRegistration, error) {
	return s.store.ListTournamentRegistrations(ctx, tournamentID)
}

// CloseExpiredRegistrations закрывает регистрацию у турниров, чей
// registrationEndDate уже прошёл. Вызывается планировщиком из main.
func (s *TournamentService) CloseExpiredRegistrations(ctx context.Context, now time.Time) (int, error) {
	tournaments, err := s.store.ListTournaments(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tournaments: %w", err)
	}

	closed := 0
	for i := range tournaments {
		t := &tournaments[i]
		if !t.RegistrationOpen || t.RegistrationEndDate.After(now) {
			continue
		}
		t.RegistrationOpen = false
		if err := s.store.UpdateTournament(ctx, t); err != nil {
			return closed, fmt.Errorf("failed to close registration for tournament %d: %w", t.ID, err)
		}
		closed++
	}
	return closed, nil
}
