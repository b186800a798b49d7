package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/utils"
	"github.com/gosimple/slug"
)

// Seed наполняет хранилище демонстрационными данными. Пароли, в отличие от
// исходных сэмплов, хранятся только в виде bcrypt-хэша.
func Seed(ctx context.Context, s Storage) error {
	now := time.Now().UTC()
	day := 24 * time.Hour

	hash, err := utils.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	player1 := &models.User{
		Username:    "player1",
		Password:    hash,
		Email:       "player1@example.com",
		DisplayName: ptr("Pro Player 1"),
	}
	player2 := &models.User{
		Username:    "player2",
		Password:    hash,
		Email:       "player2@example.com",
		DisplayName: ptr("Pro Player 2"),
	}
	for _, u := range []*models.User{player1, player2} {
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed: create user %s: %w", u.Username, err)
		}
	}

	cup := &models.Tournament{
		Name:                  "FIRE LEGENDS CUP",
		Slug:                  slug.Make("FIRE LEGENDS CUP"),
		Description:           "The ultimate Free Fire tournament",
		Format:                "Battle Royale - Squads",
		TeamSize:              4,
		MaxParticipants:       128,
		EntryFee:              200,
		PrizePool:             50000,
		StartDate:             now.Add(3 * day),
		EndDate:               now.Add(5 * day),
		RegistrationStartDate: now,
		RegistrationEndDate:   now.Add(2 * day),
		RegistrationOpen:      true,
		Rules: []string{
			"All players must be at least 16 years old.",
			"Teams must check in 30 minutes before their scheduled match time.",
			"Use of unauthorized programs or hacks will result in immediate disqualification.",
			"Tournament officials' decisions are final in all disputes.",
			"All matches will be played on the latest version of Free Fire.",
		},
		CreatedBy: player1.ID,
	}
	masters := &models.Tournament{
		Name:                  "BATTLEGROUND MASTERS",
		Slug:                  slug.Make("BATTLEGROUND MASTERS"),
		Description:           "Weekly Free Fire tournament for pros",
		Format:                "Battle Royale - Squads",
		TeamSize:              4,
		MaxParticipants:       96,
		PrizePool:             25000,
		StartDate:             now.Add(5 * day),
		EndDate:               now.Add(6 * day),
		RegistrationStartDate: now,
		RegistrationEndDate:   now.Add(4 * day),
		RegistrationOpen:      true,
		Rules: []string{
			"No emulators allowed, only mobile devices.",
			"All players must use their registered in-game name.",
			"Teams must be present 15 minutes before match start.",
			"Bad sportsmanship will result in disqualification.",
			"Matches will be played in custom rooms with tournament password.",
		},
		CreatedBy: player1.ID,
	}
	for _, t := range []*models.Tournament{cup, masters} {
		if err := s.CreateTournament(ctx, t); err != nil {
			return fmt.Errorf("seed: create tournament %s: %w", t.Name, err)
		}
	}

	phoenix := &models.Team{Name: "Phoenix Squad", Captain: player1.ID, TournamentsPlayed: 5, Badges: []string{"PRO"}}
	ghosts := &models.Team{Name: "Ghost Warriors", Captain: player2.ID, TournamentsPlayed: 3, Badges: []string{}}
	snipers := &models.Team{Name: "Elite Snipers", Captain: player1.ID, TournamentsPlayed: 8, Badges: []string{"CHAMPION"}}
	for _, t := range []*models.Team{phoenix, ghosts, snipers} {
		if err := s.CreateTeam(ctx, t); err != nil {
			return fmt.Errorf("seed: create team %s: %w", t.Name, err)
		}
	}

	members := []*models.TeamMember{
		{TeamID: phoenix.ID, UserID: player1.ID},
		{TeamID: ghosts.ID, UserID: player2.ID},
		{TeamID: snipers.ID, UserID: player1.ID},
	}
	for _, m := range members {
		if err := s.AddTeamMember(ctx, m); err != nil {
			return fmt.Errorf("seed: add team member: %w", err)
		}
	}

	registrations := []*models.TournamentRegistration{
		{TournamentID: cup.ID, TeamID: phoenix.ID, PaymentStatus: models.PaymentCompleted, PaymentID: "pay_123456"},
		{TournamentID: cup.ID, TeamID: ghosts.ID, PaymentStatus: models.PaymentCompleted, PaymentID: "pay_123457"},
		{TournamentID: cup.ID, TeamID: snipers.ID, PaymentStatus: models.PaymentCompleted, PaymentID: "pay_123458"},
	}
	for _, r := range registrations {
		if err := s.CreateRegistration(ctx, r); err != nil {
			return fmt.Errorf("seed: register team %d: %w", r.TeamID, err)
		}
	}

	match1End := now.Add(-2*day + 30*time.Minute)
	match1 := &models.Match{
		TournamentID: cup.ID,
		Round:        1,
		MatchNumber:  1,
		StartTime:    now.Add(-2 * day),
		EndTime:      &match1End,
		Status:       models.MatchStatusCompleted,
		Results:      json.RawMessage(fmt.Sprintf(`{"winner":%d,"mvp":%d}`, phoenix.ID, player1.ID)),
	}
	match2End := now.Add(-day + 30*time.Minute)
	match2 := &models.Match{
		TournamentID: cup.ID,
		Round:        1,
		MatchNumber:  2,
		StartTime:    now.Add(-day),
		EndTime:      &match2End,
		Status:       models.MatchStatusCompleted,
		Results:      json.RawMessage(fmt.Sprintf(`{"winner":%d,"mvp":%d}`, snipers.ID, player1.ID)),
	}
	for _, m := range []*models.Match{match1, match2} {
		if err := s.CreateMatch(ctx, m); err != nil {
			return fmt.Errorf("seed: create match %d: %w", m.MatchNumber, err)
		}
	}

	participants := []*models.MatchParticipant{
		{MatchID: match1.ID, TeamID: phoenix.ID, Position: 1, Points: 250, Kills: 12},
		{MatchID: match1.ID, TeamID: ghosts.ID, Position: 5, Points: 25, Kills: 4},
		{MatchID: match2.ID, TeamID: snipers.ID, Position: 1, Points: 250, Kills: 15},
		{MatchID: match2.ID, TeamID: phoenix.ID, Position: 2, Points: 150, Kills: 8},
	}
	for _, p := range participants {
		if err := s.AddMatchParticipant(ctx, p); err != nil {
			return fmt.Errorf("seed: add match participant: %w", err)
		}
	}

	profiles := []*models.UserProfile{
		{
			UserID: player1.ID, Level: 42, Rank: "Pro Player", Verified: true,
			TournamentsWon: 12, Matches: 128, Tournaments: 26, Kills: 3800,
			Stats: &models.ProfileStats{WinRate: 24, KDRatio: 3.2, HeadshotPercentage: 38, AvgSurvivalTime: "14:22"},
			Achievements: []models.Achievement{
				{Name: "Tournament Champion", Icon: "ri-trophy-fill", ColorClass: "from-amber-400 to-amber-600"},
				{Name: "Killing Machine", Icon: "ri-sword-fill", ColorClass: "from-indigo-400 to-indigo-600"},
				{Name: "Team Player", Icon: "ri-team-fill", ColorClass: "from-emerald-400 to-emerald-600"},
				{Name: "Community Hero", Icon: "ri-heart-fill", ColorClass: "from-rose-400 to-rose-600"},
			},
		},
		{
			UserID: player2.ID, Level: 28, Rank: "Advanced", Verified: false,
			TournamentsWon: 3, Matches: 76, Tournaments: 12, Kills: 1200,
			Stats: &models.ProfileStats{WinRate: 15, KDRatio: 2.1, HeadshotPercentage: 25, AvgSurvivalTime: "10:34"},
			Achievements: []models.Achievement{
				{Name: "Sharpshooter", Icon: "ri-aim-line", ColorClass: "from-amber-400 to-amber-600"},
				{Name: "Survivor", Icon: "ri-shield-star-line", ColorClass: "from-emerald-400 to-emerald-600"},
			},
		},
	}
	for _, p := range profiles {
		if err := s.CreateUserProfile(ctx, p); err != nil {
			return fmt.Errorf("seed: create profile for user %d: %w", p.UserID, err)
		}
	}

	activities := []*models.UserActivity{
		{UserID: player1.ID, Text: "Won the Weekend Warriors Tournament", Icon: ptr("ri-trophy-line"), IconColor: ptr("text-primary")},
		{UserID: player1.ID, Text: "Joined Phoenix Squad team", Icon: ptr("ri-team-line"), IconColor: ptr("text-secondary")},
		{UserID: player1.ID, Text: "Reached Level 42", Icon: ptr("ri-medal-line"), IconColor: ptr("text-warning")},
	}
	for _, a := range activities {
		if err := s.CreateUserActivity(ctx, a); err != nil {
			return fmt.Errorf("seed: create activity: %w", err)
		}
	}

	return nil
}

func ptr(s string) *string { return &s }
