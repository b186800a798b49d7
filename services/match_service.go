package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
)

// MatchService ведёт расписание матчей и запись результатов.
// Единственный переход статуса: из scheduled в completed.
type MatchService struct {
	store repositories.Storage
}

func NewMatchService(store repositories.Storage) *MatchService {
	return &MatchService{store: store}
}

type CreateMatchInput struct {
	TournamentID int             `json:"tournamentId"`
	Round        int             `json:"round"`
	MatchNumber  int             `json:"matchNumber"`
	StartTime    time.Time       `json:"startTime"`
	EndTime      *time.Time      `json:"endTime"`
	Status       string          `json:"status"`
	Results      json.RawMessage `json:"results"`
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if _, err := s.store.GetTournament(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament: %w", err)
	}

	status := models.MatchStatus(input.Status)
	switch status {
	case "", models.MatchStatusScheduled, models.MatchStatusCompleted:
	default:
		return nil, ErrValidationFailed
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Round:        input.Round,
		MatchNumber:  input.MatchNumber,
		StartTime:    input.StartTime,
		EndTime:      input.EndTime,
		Status:       status,
		Results:      input.Results,
	}
	if err := s.store.CreateMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *MatchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.store.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *MatchService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Match, error) {
	return s.store.ListTournamentMatches(ctx, tournamentID)
}

// AttachResults записывает итог матча. Payload не интерпретируется:
// сводка results и строки участников живут независимо друг от друга.
func (s *MatchService) AttachResults(ctx context.Context, matchID int, results json.RawMessage) (*models.Match, error) {
	match, err := s.store.AttachMatchResults(ctx, matchID, results, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchNotFound):
			return nil, ErrMatchNotFound
		case errors.Is(err, repositories.ErrMatchAlreadyCompleted):
			return nil, ErrMatchAlreadyCompleted
		}
		return nil, fmt.Errorf("failed to attach match results: %w", err)
	}
	return match, nil
}

type AddMatchParticipantInput struct {
	MatchID  int `json:"matchId"`
	TeamID   int `json:"teamId"`
	Position int `json:"position"`
	Points   int `json:"points"`
	Kills    int `json:"kills"`
}

func (s *MatchService) AddParticipant(ctx context.Context, input AddMatchParticipantInput) (*models.MatchParticipant, error) {
	if _, err := s.store.GetMatch(ctx, input.MatchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to check match: %w", err)
	}
	if _, err := s.store.GetTeam(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team: %w", err)
	}

	participant := &models.MatchParticipant{
		MatchID:  input.MatchID,
		TeamID:   input.TeamID,
		Position: input.Position,
		Points:   input.Points,
		Kills:    input.Kills,
	}
	if err := s.store.AddMatchParticipant(ctx, participant); err != nil {
		return nil, fmt.Errorf("failed to add match participant: %w", err)
	}
	return participant, nil
}

func (s *MatchService) ListParticipants(ctx context.Context, matchID int) ([]models.MatchParticipant, error) {
	return s.store.ListMatchParticipants(ctx, matchID)
}
