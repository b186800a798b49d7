package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/lib/pq"
)

// --- Matches ---

const matchColumns = `id, tournament_id, tournament_name, round, match_number, start_time, end_time, status, results`

func scanMatch(scanner interface{ Scan(dest ...any) error }) (*models.Match, error) {
	m := &models.Match{}
	var results []byte
	err := scanner.Scan(
		&m.ID, &m.TournamentID, &m.TournamentName, &m.Round, &m.MatchNumber,
		&m.StartTime, &m.EndTime, &m.Status, &results,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if len(results) > 0 {
		m.Results = json.RawMessage(results)
	}
	return m, nil
}

func (s *PostgresStorage) CreateMatch(ctx context.Context, m *models.Match) error {
	if m.Status == "" {
		m.Status = models.MatchStatusScheduled
	}

	// Имя турнира фиксируется на момент создания матча.
	query := `
		INSERT INTO matches (tournament_id, tournament_name, round, match_number, start_time, end_time, status, results)
		VALUES (
			$1,
			COALESCE((SELECT name FROM tournaments WHERE id = $1), 'Unknown Tournament'),
			$2, $3, $4, $5, $6, $7
		)
		RETURNING id, tournament_name`

	var results any
	if len(m.Results) > 0 {
		results = []byte(m.Results)
	}

	return s.db.QueryRowContext(ctx, query,
		m.TournamentID, m.Round, m.MatchNumber, m.StartTime, m.EndTime, m.Status, results,
	).Scan(&m.ID, &m.TournamentName)
}

func (s *PostgresStorage) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return scanMatch(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStorage) ListTournamentMatches(ctx context.Context, tournamentID int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) AttachMatchResults(ctx context.Context, id int, results json.RawMessage, endTime time.Time) (*models.Match, error) {
	query := `
		UPDATE matches
		SET results = $2, status = $3, end_time = COALESCE(end_time, $4)
		WHERE id = $1 AND status = $5
		RETURNING ` + matchColumns

	m, err := scanMatch(s.db.QueryRowContext(ctx, query,
		id, []byte(results), models.MatchStatusCompleted, endTime, models.MatchStatusScheduled,
	))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, ErrMatchNotFound) {
		return nil, err
	}

	// Строка не обновилась: либо матча нет, либо он уже завершён.
	existing, getErr := s.GetMatch(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if existing.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	return nil, fmt.Errorf("failed to attach results to match %d", id)
}

// --- Match participants ---

func (s *PostgresStorage) AddMatchParticipant(ctx context.Context, p *models.MatchParticipant) error {
	query := `
		INSERT INTO match_participants (match_id, team_id, position, points, kills)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	return s.db.QueryRowContext(ctx, query,
		p.MatchID, p.TeamID, p.Position, p.Points, p.Kills,
	).Scan(&p.ID)
}

func (s *PostgresStorage) ListMatchParticipants(ctx context.Context, matchID int) ([]models.MatchParticipant, error) {
	query := `
		SELECT id, match_id, team_id, position, points, kills
		FROM match_participants
		WHERE match_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MatchParticipant{}
	for rows.Next() {
		var p models.MatchParticipant
		if err := rows.Scan(&p.ID, &p.MatchID, &p.TeamID, &p.Position, &p.Points, &p.Kills); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// --- User profiles ---

func (s *PostgresStorage) CreateUserProfile(ctx context.Context, p *models.UserProfile) error {
	stats, err := marshalNullable(p.Stats)
	if err != nil {
		return fmt.Errorf("failed to marshal profile stats: %w", err)
	}
	achievements, err := marshalNullable(p.Achievements)
	if err != nil {
		return fmt.Errorf("failed to marshal profile achievements: %w", err)
	}

	query := `
		INSERT INTO user_profiles (
			user_id, level, rank, verified, tournaments_won, matches, tournaments, kills, stats, achievements
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, updated_at`

	return s.db.QueryRowContext(ctx, query,
		p.UserID, p.Level, p.Rank, p.Verified,
		p.TournamentsWon, p.Matches, p.Tournaments, p.Kills,
		stats, achievements,
	).Scan(&p.ID, &p.UpdatedAt)
}

func (s *PostgresStorage) GetUserProfileByUser(ctx context.Context, userID int) (*models.UserProfile, error) {
	query := `
		SELECT id, user_id, level, rank, verified, tournaments_won, matches, tournaments, kills,
			stats, achievements, updated_at
		FROM user_profiles
		WHERE user_id = $1
		ORDER BY id
		LIMIT 1`

	p := &models.UserProfile{}
	var stats, achievements []byte
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Level, &p.Rank, &p.Verified,
		&p.TournamentsWon, &p.Matches, &p.Tournaments, &p.Kills,
		&stats, &achievements, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &p.Stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile stats: %w", err)
		}
	}
	if len(achievements) > 0 {
		if err := json.Unmarshal(achievements, &p.Achievements); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile achievements: %w", err)
		}
	}
	return p, nil
}

func marshalNullable(v any) (any, error) {
	switch val := v.(type) {
	case *models.ProfileStats:
		if val == nil {
			return nil, nil
		}
	case []models.Achievement:
		if val == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// --- User activities ---

func (s *PostgresStorage) CreateUserActivity(ctx context.Context, a *models.UserActivity) error {
	query := `
		INSERT INTO user_activities (user_id, text, icon, icon_color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp`

	return s.db.QueryRowContext(ctx, query,
		a.UserID, a.Text, a.Icon, a.IconColor,
	).Scan(&a.ID, &a.Timestamp)
}

func (s *PostgresStorage) ListUserActivities(ctx context.Context, userID int) ([]models.UserActivity, error) {
	query := `
		SELECT id, user_id, text, icon, icon_color, timestamp
		FROM user_activities
		WHERE user_id = $1
		ORDER BY timestamp DESC, id`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.UserActivity{}
	for rows.Next() {
		var a models.UserActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Text, &a.Icon, &a.IconColor, &a.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// --- Cached GitHub projects ---

func (s *PostgresStorage) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (
			repo_id, username, name, description, html_url, homepage,
			topics, category, language, image, repo_created_at, repo_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	return s.db.QueryRowContext(ctx, query,
		p.RepoID, p.Username, p.Name, p.Description, p.HTMLURL, p.Homepage,
		pq.Array(p.Topics), p.Category, p.Language, p.Image, p.RepoCreatedAt, p.RepoUpdatedAt,
	).Scan(&p.ID)
}

func (s *PostgresStorage) ListProjectsByUsername(ctx context.Context, username string) ([]models.Project, error) {
	query := `
		SELECT id, repo_id, username, name, description, html_url, homepage,
			topics, category, language, image, repo_created_at, repo_updated_at
		FROM projects
		WHERE username = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Project{}
	for rows.Next() {
		var p models.Project
		err := rows.Scan(
			&p.ID, &p.RepoID, &p.Username, &p.Name, &p.Description, &p.HTMLURL, &p.Homepage,
			pq.Array(&p.Topics), &p.Category, &p.Language, &p.Image, &p.RepoCreatedAt, &p.RepoUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
