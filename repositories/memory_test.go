package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/blazegg/tournament-hub/models"
)

func newTestUser(username, email string) *models.User {
	return &models.User{
		Username: username,
		Password: "hash",
		Email:    email,
	}
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	for i, u := range []*models.User{
		newTestUser("alpha", "alpha@example.com"),
		newTestUser("beta", "beta@example.com"),
		newTestUser("gamma", "gamma@example.com"),
	} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
		if u.ID != i+1 {
			t.Fatalf("expected id %d, got %d", i+1, u.ID)
		}
		if u.CreatedAt.IsZero() {
			t.Fatalf("expected createdAt to be set")
		}
	}
}

func TestCreateUserConflicts(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	if err := s.CreateUser(ctx, newTestUser("alpha", "alpha@example.com")); err != nil {
		t.Fatalf("create user: %v", err)
	}

	err := s.CreateUser(ctx, newTestUser("alpha", "other@example.com"))
	if !errors.Is(err, ErrUserUsernameConflict) {
		t.Fatalf("expected ErrUserUsernameConflict, got %v", err)
	}

	err = s.CreateUser(ctx, newTestUser("other", "alpha@example.com"))
	if !errors.Is(err, ErrUserEmailConflict) {
		t.Fatalf("expected ErrUserEmailConflict, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	s := NewMemStorage()
	if _, err := s.GetUser(context.Background(), 42); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestParticipantsCountDerivedFromRegistrations(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	tournament := &models.Tournament{Name: "Cup", Slug: "cup", MaxParticipants: 16}
	if err := s.CreateTournament(ctx, tournament); err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	for i := 0; i < 3; i++ {
		team := &models.Team{Name: "team"}
		if err := s.CreateTeam(ctx, team); err != nil {
			t.Fatalf("create team: %v", err)
		}
		reg := &models.TournamentRegistration{
			TournamentID:  tournament.ID,
			TeamID:        team.ID,
			PaymentStatus: models.PaymentPending,
		}
		if err := s.CreateRegistration(ctx, reg); err != nil {
			t.Fatalf("create registration: %v", err)
		}
	}

	got, err := s.GetTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if got.ParticipantsCount != 3 {
		t.Fatalf("expected participantsCount 3, got %d", got.ParticipantsCount)
	}

	// Повторное чтение не меняет счётчик.
	got, err = s.GetTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get tournament again: %v", err)
	}
	if got.ParticipantsCount != 3 {
		t.Fatalf("expected participantsCount 3 after repeated read, got %d", got.ParticipantsCount)
	}

	list, err := s.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(list) != 1 || list[0].ParticipantsCount != 3 {
		t.Fatalf("expected one tournament with count 3, got %+v", list)
	}

	bySlug, err := s.GetTournamentBySlug(ctx, "cup")
	if err != nil {
		t.Fatalf("get tournament by slug: %v", err)
	}
	if bySlug.ParticipantsCount != 3 {
		t.Fatalf("expected participantsCount 3 by slug, got %d", bySlug.ParticipantsCount)
	}
}

func TestCreateRegistrationRejectsDuplicate(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	tournament := &models.Tournament{Name: "Cup"}
	if err := s.CreateTournament(ctx, tournament); err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	team := &models.Team{Name: "team"}
	if err := s.CreateTeam(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}

	reg := &models.TournamentRegistration{TournamentID: tournament.ID, TeamID: team.ID}
	if err := s.CreateRegistration(ctx, reg); err != nil {
		t.Fatalf("create registration: %v", err)
	}

	dup := &models.TournamentRegistration{TournamentID: tournament.ID, TeamID: team.ID}
	if err := s.CreateRegistration(ctx, dup); !errors.Is(err, ErrRegistrationConflict) {
		t.Fatalf("expected ErrRegistrationConflict, got %v", err)
	}

	got, err := s.GetTournament(ctx, tournament.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if got.ParticipantsCount != 1 {
		t.Fatalf("expected participantsCount 1 after rejected duplicate, got %d", got.ParticipantsCount)
	}
}

func TestCreateMatchDenormalizesTournamentName(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	tournament := &models.Tournament{Name: "FIRE LEGENDS CUP"}
	if err := s.CreateTournament(ctx, tournament); err != nil {
		t.Fatalf("create tournament: %v", err)
	}

	match := &models.Match{TournamentID: tournament.ID, Round: 1, MatchNumber: 1}
	if err := s.CreateMatch(ctx, match); err != nil {
		t.Fatalf("create match: %v", err)
	}
	if match.TournamentName != "FIRE LEGENDS CUP" {
		t.Fatalf("expected denormalized tournament name, got %q", match.TournamentName)
	}
	if match.Status != models.MatchStatusScheduled {
		t.Fatalf("expected default status scheduled, got %q", match.Status)
	}

	dangling := &models.Match{TournamentID: 999}
	if err := s.CreateMatch(ctx, dangling); err != nil {
		t.Fatalf("create match with dangling tournament: %v", err)
	}
	if dangling.TournamentName != "Unknown Tournament" {
		t.Fatalf("expected fallback name, got %q", dangling.TournamentName)
	}
}

func TestAttachMatchResults(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	match := &models.Match{TournamentID: 1}
	if err := s.CreateMatch(ctx, match); err != nil {
		t.Fatalf("create match: %v", err)
	}

	results := json.RawMessage(`{"winner":1,"mvp":2}`)
	endTime := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)

	updated, err := s.AttachMatchResults(ctx, match.ID, results, endTime)
	if err != nil {
		t.Fatalf("attach results: %v", err)
	}
	if updated.Status != models.MatchStatusCompleted {
		t.Fatalf("expected status completed, got %q", updated.Status)
	}
	if updated.EndTime == nil || !updated.EndTime.Equal(endTime) {
		t.Fatalf("expected endTime %v, got %v", endTime, updated.EndTime)
	}
	if string(updated.Results) != string(results) {
		t.Fatalf("expected results %s, got %s", results, updated.Results)
	}

	_, err = s.AttachMatchResults(ctx, match.ID, results, endTime)
	if !errors.Is(err, ErrMatchAlreadyCompleted) {
		t.Fatalf("expected ErrMatchAlreadyCompleted, got %v", err)
	}

	_, err = s.AttachMatchResults(ctx, 999, results, endTime)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestListUserActivitiesNewestFirst(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		activity := &models.UserActivity{
			UserID:    1,
			Text:      text,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.CreateUserActivity(ctx, activity); err != nil {
			t.Fatalf("create activity: %v", err)
		}
	}

	activities, err := s.ListUserActivities(ctx, 1)
	if err != nil {
		t.Fatalf("list activities: %v", err)
	}
	if len(activities) != 3 {
		t.Fatalf("expected 3 activities, got %d", len(activities))
	}
	for i, want := range []string{"third", "second", "first"} {
		if activities[i].Text != want {
			t.Fatalf("expected activity %d to be %q, got %q", i, want, activities[i].Text)
		}
	}
}

func TestStoredEntitiesAreCopies(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	team := &models.Team{Name: "Phoenix Squad"}
	if err := s.CreateTeam(ctx, team); err != nil {
		t.Fatalf("create team: %v", err)
	}

	// Мутация возвращённого значения не должна протекать в хранилище.
	team.Name = "mutated"

	got, err := s.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "Phoenix Squad" {
		t.Fatalf("expected stored name intact, got %q", got.Name)
	}

	got.Name = "mutated again"
	again, err := s.GetTeam(ctx, team.ID)
	if err != nil {
		t.Fatalf("get team again: %v", err)
	}
	if again.Name != "Phoenix Squad" {
		t.Fatalf("expected stored name intact after read mutation, got %q", again.Name)
	}
}

func TestSeedPopulatesDemoData(t *testing.T) {
	s := NewMemStorage()
	ctx := context.Background()

	if err := Seed(ctx, s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tournaments, err := s.ListTournaments(ctx)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(tournaments) != 2 {
		t.Fatalf("expected 2 seeded tournaments, got %d", len(tournaments))
	}
	if tournaments[0].ParticipantsCount != 3 {
		t.Fatalf("expected 3 registrations on first tournament, got %d", tournaments[0].ParticipantsCount)
	}

	teams, err := s.ListTeams(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 seeded teams, got %d", len(teams))
	}

	if _, err := s.GetUserByUsername(ctx, "player1"); err != nil {
		t.Fatalf("expected seeded user player1: %v", err)
	}
}
