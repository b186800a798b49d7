package repositories

import (
	"context"
	"encoding/json"
	"time"

	"github.com/blazegg/tournament-hub/models"
)

// Storage - единственное авторитетное хранилище всех сущностей и
// единственное место, где выдаются новые идентификаторы. Все surfaces
// приложения (включая административные операции) ходят через него.
//
// Списки возвращаются в порядке вставки (id по возрастанию), кроме
// ListUserActivities, которая отсортирована по убыванию времени.
type Storage interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// Tournaments. GetTournament и ListTournaments пересчитывают
	// ParticipantsCount из регистраций на каждом чтении.
	CreateTournament(ctx context.Context, tournament *models.Tournament) error
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	GetTournamentBySlug(ctx context.Context, slug string) (*models.Tournament, error)
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	UpdateTournament(ctx context.Context, tournament *models.Tournament) error
	DeleteTournament(ctx context.Context, id int) error

	// Teams
	CreateTeam(ctx context.Context, team *models.Team) error
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	UpdateTeamLogo(ctx context.Context, teamID int, logo *string) error

	// Team members
	AddTeamMember(ctx context.Context, member *models.TeamMember) error
	ListTeamMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)

	// Tournament registrations
	CreateRegistration(ctx context.Context, registration *models.TournamentRegistration) error
	FindRegistration(ctx context.Context, tournamentID, teamID int) (*models.TournamentRegistration, error)
	ListTournamentRegistrations(ctx context.Context, tournamentID int) ([]models.TournamentRegistration, error)

	// Matches. CreateMatch фиксирует имя турнира в момент создания.
	CreateMatch(ctx context.Context, match *models.Match) error
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListTournamentMatches(ctx context.Context, tournamentID int) ([]models.Match, error)
	AttachMatchResults(ctx context.Context, id int, results json.RawMessage, endTime time.Time) (*models.Match, error)

	// Match participants
	AddMatchParticipant(ctx context.Context, participant *models.MatchParticipant) error
	ListMatchParticipants(ctx context.Context, matchID int) ([]models.MatchParticipant, error)

	// User profiles
	CreateUserProfile(ctx context.Context, profile *models.UserProfile) error
	GetUserProfileByUser(ctx context.Context, userID int) (*models.UserProfile, error)

	// User activities
	CreateUserActivity(ctx context.Context, activity *models.UserActivity) error
	ListUserActivities(ctx context.Context, userID int) ([]models.UserActivity, error)

	// Cached GitHub projects (portfolio widget)
	CreateProject(ctx context.Context, project *models.Project) error
	ListProjectsByUsername(ctx context.Context, username string) ([]models.Project, error)
}
