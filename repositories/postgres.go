package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blazegg/tournament-hub/models"
	"github.com/lib/pq"
)

// PostgresStorage - реализация Storage поверх PostgreSQL. Семантика та же,
// что у MemStorage: производный participantsCount считается подзапросом на
// каждом чтении, списки упорядочены по id.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// --- Users ---

func handleUserError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "users_username_key":
			return ErrUserUsernameConflict
		case "users_email_key":
			return ErrUserEmailConflict
		}
	}
	return err
}

func (s *PostgresStorage) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (username, password, email, display_name, photo_url, phone_number, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		u.Username, u.Password, u.Email, u.DisplayName, u.PhotoURL, u.PhoneNumber, u.IsAdmin,
	).Scan(&u.ID, &u.CreatedAt)

	return handleUserError(err)
}

func (s *PostgresStorage) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.Username, &u.Password, &u.Email, &u.DisplayName,
		&u.PhotoURL, &u.PhoneNumber, &u.IsAdmin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

const userColumns = `id, username, password, email, display_name, photo_url, phone_number, is_admin, created_at`

func (s *PostgresStorage) GetUser(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 ORDER BY id LIMIT 1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, username))
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 ORDER BY id LIMIT 1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

// --- Tournaments ---

const tournamentColumns = `
	t.id, t.name, t.slug, t.description, t.format, t.team_size, t.max_participants,
	t.entry_fee, t.prize_pool, t.start_date, t.end_date,
	t.registration_start_date, t.registration_end_date, t.registration_open,
	t.rules, t.created_by, t.created_at,
	(SELECT COUNT(*) FROM tournament_registrations r WHERE r.tournament_id = t.id) AS participants_count`

func scanTournament(scanner interface{ Scan(dest ...any) error }) (*models.Tournament, error) {
	t := &models.Tournament{}
	var createdBy sql.NullInt64
	err := scanner.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Description, &t.Format, &t.TeamSize, &t.MaxParticipants,
		&t.EntryFee, &t.PrizePool, &t.StartDate, &t.EndDate,
		&t.RegistrationStartDate, &t.RegistrationEndDate, &t.RegistrationOpen,
		pq.Array(&t.Rules), &createdBy, &t.CreatedAt,
		&t.ParticipantsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t.CreatedBy = int(createdBy.Int64)
	return t, nil
}

func (s *PostgresStorage) CreateTournament(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (
			name, slug, description, format, team_size, max_participants,
			entry_fee, prize_pool, start_date, end_date,
			registration_start_date, registration_end_date, registration_open, rules, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`

	var createdBy any
	if t.CreatedBy != 0 {
		createdBy = t.CreatedBy
	}

	err := s.db.QueryRowContext(ctx, query,
		t.Name, t.Slug, t.Description, t.Format, t.TeamSize, t.MaxParticipants,
		t.EntryFee, t.PrizePool, t.StartDate, t.EndDate,
		t.RegistrationStartDate, t.RegistrationEndDate, t.RegistrationOpen,
		pq.Array(t.Rules), createdBy,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return err
	}
	t.ParticipantsCount = 0
	return nil
}

func (s *PostgresStorage) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t WHERE t.id = $1`
	return scanTournament(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStorage) GetTournamentBySlug(ctx context.Context, slug string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t WHERE t.slug = $1 ORDER BY t.id LIMIT 1`
	return scanTournament(s.db.QueryRowContext(ctx, query, slug))
}

func (s *PostgresStorage) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t ORDER BY t.id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Tournament{}
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpdateTournament(ctx context.Context, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $2, slug = $3, description = $4, format = $5, team_size = $6,
			max_participants = $7, entry_fee = $8, prize_pool = $9,
			start_date = $10, end_date = $11,
			registration_start_date = $12, registration_end_date = $13,
			registration_open = $14, rules = $15
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Slug, t.Description, t.Format, t.TeamSize,
		t.MaxParticipants, t.EntryFee, t.PrizePool,
		t.StartDate, t.EndDate,
		t.RegistrationStartDate, t.RegistrationEndDate,
		t.RegistrationOpen, pq.Array(t.Rules),
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (s *PostgresStorage) DeleteTournament(ctx context.Context, id int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// --- Teams ---

func (s *PostgresStorage) CreateTeam(ctx context.Context, t *models.Team) error {
	query := `
		INSERT INTO teams (name, captain, logo, tournaments_played, badges)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	var captain any
	if t.Captain != 0 {
		captain = t.Captain
	}

	return s.db.QueryRowContext(ctx, query,
		t.Name, captain, t.Logo, t.TournamentsPlayed, pq.Array(t.Badges),
	).Scan(&t.ID, &t.CreatedAt)
}

func scanTeam(scanner interface{ Scan(dest ...any) error }) (*models.Team, error) {
	t := &models.Team{}
	var captain sql.NullInt64
	err := scanner.Scan(
		&t.ID, &t.Name, &captain, &t.Logo, &t.TournamentsPlayed, pq.Array(&t.Badges), &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	t.Captain = int(captain.Int64)
	return t, nil
}

func (s *PostgresStorage) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, captain, logo, tournaments_played, badges, created_at FROM teams WHERE id = $1`
	return scanTeam(s.db.QueryRowContext(ctx, query, id))
}

func (s *PostgresStorage) ListTeams(ctx context.Context) ([]models.Team, error) {
	query := `SELECT id, name, captain, logo, tournaments_played, badges, created_at FROM teams ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *PostgresStorage) UpdateTeamLogo(ctx context.Context, teamID int, logo *string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE teams SET logo = $2 WHERE id = $1`, teamID, logo)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

// --- Team members ---

func (s *PostgresStorage) AddTeamMember(ctx context.Context, m *models.TeamMember) error {
	query := `
		INSERT INTO team_members (team_id, user_id)
		VALUES ($1, $2)
		RETURNING id, joined_at`

	return s.db.QueryRowContext(ctx, query, m.TeamID, m.UserID).Scan(&m.ID, &m.JoinedAt)
}

func (s *PostgresStorage) ListTeamMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `SELECT id, team_id, user_id, joined_at FROM team_members WHERE team_id = $1 ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- Tournament registrations ---

func (s *PostgresStorage) CreateRegistration(ctx context.Context, r *models.TournamentRegistration) error {
	query := `
		INSERT INTO tournament_registrations (tournament_id, team_id, payment_status, payment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registered_at`

	err := s.db.QueryRowContext(ctx, query,
		r.TournamentID, r.TeamID, r.PaymentStatus, r.PaymentID,
	).Scan(&r.ID, &r.RegisteredAt)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrRegistrationConflict
	}
	return err
}

func (s *PostgresStorage) FindRegistration(ctx context.Context, tournamentID, teamID int) (*models.TournamentRegistration, error) {
	query := `
		SELECT id, tournament_id, team_id, registered_at, payment_status, payment_id
		FROM tournament_registrations
		WHERE tournament_id = $1 AND team_id = $2`

	r := &models.TournamentRegistration{}
	err := s.db.QueryRowContext(ctx, query, tournamentID, teamID).Scan(
		&r.ID, &r.TournamentID, &r.TeamID, &r.RegisteredAt, &r.PaymentStatus, &r.PaymentID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *PostgresStorage) ListTournamentRegistrations(ctx context.Context, tournamentID int) ([]models.TournamentRegistration, error) {
	query := `
		SELECT id, tournament_id, team_id, registered_at, payment_status, payment_id
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TournamentRegistration{}
	for rows.Next() {
		var r models.TournamentRegistration
		if err := rows.Scan(&r.ID, &r.TournamentID, &r.TeamID, &r.RegisteredAt, &r.PaymentStatus, &r.PaymentID); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
