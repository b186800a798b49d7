package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
)

func seedTournament(t *testing.T, store repositories.Storage, name string) *models.Tournament {
	t.Helper()
	tournament := &models.Tournament{Name: name}
	if err := store.CreateTournament(context.Background(), tournament); err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return tournament
}

func TestCreateMatch(t *testing.T) {
	store := repositories.NewMemStorage()
	svc := NewMatchService(store)
	ctx := context.Background()

	tournament := seedTournament(t, store, "Cup")

	match, err := svc.Create(ctx, CreateMatchInput{
		TournamentID: tournament.ID,
		Round:        1,
		MatchNumber:  1,
		StartTime:    time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if match.Status != models.MatchStatusScheduled {
		t.Fatalf("expected default status scheduled, got %q", match.Status)
	}
	if match.TournamentName != "Cup" {
		t.Fatalf("expected tournament name denormalized, got %q", match.TournamentName)
	}

	_, err = svc.Create(ctx, CreateMatchInput{TournamentID: 999})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected ErrTournamentNotFound, got %v", err)
	}

	_, err = svc.Create(ctx, CreateMatchInput{TournamentID: tournament.ID, Status: "cancelled"})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed for bad status, got %v", err)
	}
}

func TestAttachResultsOnce(t *testing.T) {
	store := repositories.NewMemStorage()
	svc := NewMatchService(store)
	ctx := context.Background()

	tournament := seedTournament(t, store, "Cup")
	match, err := svc.Create(ctx, CreateMatchInput{TournamentID: tournament.ID})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	results := json.RawMessage(`{"winner":1,"mvp":4}`)
	completed, err := svc.AttachResults(ctx, match.ID, results)
	if err != nil {
		t.Fatalf("attach results: %v", err)
	}
	if completed.Status != models.MatchStatusCompleted {
		t.Fatalf("expected status completed, got %q", completed.Status)
	}
	if completed.EndTime == nil {
		t.Fatalf("expected endTime set")
	}

	_, err = svc.AttachResults(ctx, match.ID, results)
	if !errors.Is(err, ErrMatchAlreadyCompleted) {
		t.Fatalf("expected ErrMatchAlreadyCompleted, got %v", err)
	}

	_, err = svc.AttachResults(ctx, 999, results)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestAddParticipantChecksRefs(t *testing.T) {
	store := repositories.NewMemStorage()
	svc := NewMatchService(store)
	ctx := context.Background()

	tournament := seedTournament(t, store, "Cup")
	team := &models.Team{Name: "alpha"}
	if err := store.CreateTeam(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	match, err := svc.Create(ctx, CreateMatchInput{TournamentID: tournament.ID})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	participant, err := svc.AddParticipant(ctx, AddMatchParticipantInput{
		MatchID:  match.ID,
		TeamID:   team.ID,
		Position: 1,
		Points:   25,
		Kills:    12,
	})
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}
	if participant.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	_, err = svc.AddParticipant(ctx, AddMatchParticipantInput{MatchID: 999, TeamID: team.ID})
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}

	_, err = svc.AddParticipant(ctx, AddMatchParticipantInput{MatchID: match.ID, TeamID: 999})
	if !errors.Is(err, ErrTeamNotFound) {
		t.Fatalf("expected ErrTeamNotFound, got %v", err)
	}

	participants, err := svc.ListParticipants(ctx, match.ID)
	if err != nil {
		t.Fatalf("list participants: %v", err)
	}
	if len(participants) != 1 || participants[0].Kills != 12 {
		t.Fatalf("expected one participant with 12 kills, got %+v", participants)
	}
}
