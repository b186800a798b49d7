package repositories

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/blazegg/tournament-hub/models"
)

// MemStorage - хранилище в памяти: map на каждый тип сущности, ключ -
// автоинкрементный id. Один RWMutex накрывает все операции: создание
// регистрации и пересчёт participantsCount никогда не перемежаются, так
// что инвариант count == |registrations(tournament)| держится при любом
// числе конкурентных запросов.
type MemStorage struct {
	mu sync.RWMutex

	users             map[int]*models.User
	tournaments       map[int]*models.Tournament
	teams             map[int]*models.Team
	teamMembers       map[int]*models.TeamMember
	registrations     map[int]*models.TournamentRegistration
	matches           map[int]*models.Match
	matchParticipants map[int]*models.MatchParticipant
	profiles          map[int]*models.UserProfile
	activities        map[int]*models.UserActivity
	projects          map[int]*models.Project

	userSeq             int
	tournamentSeq       int
	teamSeq             int
	teamMemberSeq       int
	registrationSeq     int
	matchSeq            int
	matchParticipantSeq int
	profileSeq          int
	activitySeq         int
	projectSeq          int
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		users:             make(map[int]*models.User),
		tournaments:       make(map[int]*models.Tournament),
		teams:             make(map[int]*models.Team),
		teamMembers:       make(map[int]*models.TeamMember),
		registrations:     make(map[int]*models.TournamentRegistration),
		matches:           make(map[int]*models.Match),
		matchParticipants: make(map[int]*models.MatchParticipant),
		profiles:          make(map[int]*models.UserProfile),
		activities:        make(map[int]*models.UserActivity),
		projects:          make(map[int]*models.Project),
	}
}

// sortedIDs возвращает ключи map по возрастанию. Id выдаются монотонно,
// поэтому возрастание id совпадает с порядком вставки.
func sortedIDs[V any](m map[int]*V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// --- Users ---

func (s *MemStorage) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return ErrUserUsernameConflict
		}
		if u.Email == user.Email {
			return ErrUserEmailConflict
		}
	}

	s.userSeq++
	user.ID = s.userSeq
	user.CreatedAt = orNow(user.CreatedAt)
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *MemStorage) GetUser(_ context.Context, id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemStorage) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if s.users[id].Username == username {
			out := *s.users[id]
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.users) {
		if s.users[id].Email == email {
			out := *s.users[id]
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

// --- Tournaments ---

func (s *MemStorage) CreateTournament(_ context.Context, tournament *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournamentSeq++
	tournament.ID = s.tournamentSeq
	tournament.CreatedAt = orNow(tournament.CreatedAt)
	tournament.ParticipantsCount = 0
	stored := *tournament
	s.tournaments[tournament.ID] = &stored
	return nil
}

// countRegistrations вызывается под уже взятым mu.
func (s *MemStorage) countRegistrations(tournamentID int) int {
	n := 0
	for _, r := range s.registrations {
		if r.TournamentID == tournamentID {
			n++
		}
	}
	return n
}

func (s *MemStorage) GetTournament(_ context.Context, id int) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tournaments[id]
	if !ok {
		return nil, ErrTournamentNotFound
	}
	out := *t
	out.ParticipantsCount = s.countRegistrations(id)
	return &out, nil
}

func (s *MemStorage) GetTournamentBySlug(_ context.Context, slug string) (*models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.tournaments) {
		if s.tournaments[id].Slug == slug {
			out := *s.tournaments[id]
			out.ParticipantsCount = s.countRegistrations(id)
			return &out, nil
		}
	}
	return nil, ErrTournamentNotFound
}

func (s *MemStorage) ListTournaments(_ context.Context) ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Tournament, 0, len(s.tournaments))
	for _, id := range sortedIDs(s.tournaments) {
		t := *s.tournaments[id]
		t.ParticipantsCount = s.countRegistrations(id)
		out = append(out, t)
	}
	return out, nil
}

func (s *MemStorage) UpdateTournament(_ context.Context, tournament *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.tournaments[tournament.ID]
	if !ok {
		return ErrTournamentNotFound
	}
	tournament.CreatedAt = existing.CreatedAt
	stored := *tournament
	s.tournaments[tournament.ID] = &stored
	return nil
}

func (s *MemStorage) DeleteTournament(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[id]; !ok {
		return ErrTournamentNotFound
	}
	delete(s.tournaments, id)
	return nil
}

// --- Teams ---

func (s *MemStorage) CreateTeam(_ context.Context, team *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teamSeq++
	team.ID = s.teamSeq
	team.CreatedAt = orNow(team.CreatedAt)
	stored := *team
	s.teams[team.ID] = &stored
	return nil
}

func (s *MemStorage) GetTeam(_ context.Context, id int) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teams[id]
	if !ok {
		return nil, ErrTeamNotFound
	}
	out := *t
	return &out, nil
}

func (s *MemStorage) ListTeams(_ context.Context) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Team, 0, len(s.teams))
	for _, id := range sortedIDs(s.teams) {
		out = append(out, *s.teams[id])
	}
	return out, nil
}

func (s *MemStorage) UpdateTeamLogo(_ context.Context, teamID int, logo *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.teams[teamID]
	if !ok {
		return ErrTeamNotFound
	}
	t.Logo = logo
	return nil
}

// --- Team members ---

func (s *MemStorage) AddTeamMember(_ context.Context, member *models.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teamMemberSeq++
	member.ID = s.teamMemberSeq
	member.JoinedAt = orNow(member.JoinedAt)
	stored := *member
	s.teamMembers[member.ID] = &stored
	return nil
}

func (s *MemStorage) ListTeamMembers(_ context.Context, teamID int) ([]models.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.TeamMember{}
	for _, id := range sortedIDs(s.teamMembers) {
		if s.teamMembers[id].TeamID == teamID {
			out = append(out, *s.teamMembers[id])
		}
	}
	return out, nil
}

// --- Tournament registrations ---

func (s *MemStorage) CreateRegistration(_ context.Context, registration *models.TournamentRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.registrations {
		if r.TournamentID == registration.TournamentID && r.TeamID == registration.TeamID {
			return ErrRegistrationConflict
		}
	}

	s.registrationSeq++
	registration.ID = s.registrationSeq
	registration.RegisteredAt = orNow(registration.RegisteredAt)
	stored := *registration
	s.registrations[registration.ID] = &stored
	return nil
}

func (s *MemStorage) FindRegistration(_ context.Context, tournamentID, teamID int) (*models.TournamentRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range sortedIDs(s.registrations) {
		r := s.registrations[id]
		if r.TournamentID == tournamentID && r.TeamID == teamID {
			out := *r
			return &out, nil
		}
	}
	return nil, ErrRegistrationNotFound
}

func (s *MemStorage) ListTournamentRegistrations(_ context.Context, tournamentID int) ([]models.TournamentRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.TournamentRegistration{}
	for _, id := range sortedIDs(s.registrations) {
		if s.registrations[id].TournamentID == tournamentID {
			out = append(out, *s.registrations[id])
		}
	}
	return out, nil
}

// --- Matches ---

func (s *MemStorage) CreateMatch(_ context.Context, match *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matchSeq++
	match.ID = s.matchSeq
	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	match.TournamentName = "Unknown Tournament"
	if t, ok := s.tournaments[match.TournamentID]; ok {
		match.TournamentName = t.Name
	}
	stored := *match
	s.matches[match.ID] = &stored
	return nil
}

func (s *MemStorage) GetMatch(_ context.Context, id int) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	out := *m
	return &out, nil
}

func (s *MemStorage) ListTournamentMatches(_ context.Context, tournamentID int) ([]models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Match{}
	for _, id := range sortedIDs(s.matches) {
		if s.matches[id].TournamentID == tournamentID {
			out = append(out, *s.matches[id])
		}
	}
	return out, nil
}

func (s *MemStorage) AttachMatchResults(_ context.Context, id int, results json.RawMessage, endTime time.Time) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	if m.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}

	m.Results = results
	m.Status = models.MatchStatusCompleted
	if m.EndTime == nil {
		t := endTime
		m.EndTime = &t
	}
	out := *m
	return &out, nil
}

// --- Match participants ---

func (s *MemStorage) AddMatchParticipant(_ context.Context, participant *models.MatchParticipant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matchParticipantSeq++
	participant.ID = s.matchParticipantSeq
	stored := *participant
	s.matchParticipants[participant.ID] = &stored
	return nil
}

func (s *MemStorage) ListMatchParticipants(_ context.Context, matchID int) ([]models.MatchParticipant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.MatchParticipant{}
	for _, id := range sortedIDs(s.matchParticipants) {
		if s.matchParticipants[id].MatchID == matchID {
			out = append(out, *s.matchParticipants[id])
		}
	}
	return out, nil
}

// --- User profiles ---

func (s *MemStorage) CreateUserProfile(_ context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profileSeq++
	profile.ID = s.profileSeq
	profile.UpdatedAt = orNow(profile.UpdatedAt)
	stored := *profile
	s.profiles[profile.ID] = &stored
	return nil
}

func (s *MemStorage) GetUserProfileByUser(_ context.Context, userID int) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Уникальность профиля на пользователя хранилище не гарантирует,
	// возвращается первый по порядку вставки.
	for _, id := range sortedIDs(s.profiles) {
		if s.profiles[id].UserID == userID {
			out := *s.profiles[id]
			return &out, nil
		}
	}
	return nil, ErrProfileNotFound
}

// --- User activities ---

func (s *MemStorage) CreateUserActivity(_ context.Context, activity *models.UserActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activitySeq++
	activity.ID = s.activitySeq
	activity.Timestamp = orNow(activity.Timestamp)
	stored := *activity
	s.activities[activity.ID] = &stored
	return nil
}

func (s *MemStorage) ListUserActivities(_ context.Context, userID int) ([]models.UserActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.UserActivity{}
	for _, id := range sortedIDs(s.activities) {
		if s.activities[id].UserID == userID {
			out = append(out, *s.activities[id])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// --- Cached GitHub projects ---

func (s *MemStorage) CreateProject(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projectSeq++
	project.ID = s.projectSeq
	stored := *project
	s.projects[project.ID] = &stored
	return nil
}

func (s *MemStorage) ListProjectsByUsername(_ context.Context, username string) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Project{}
	for _, id := range sortedIDs(s.projects) {
		if s.projects[id].Username == username {
			out = append(out, *s.projects[id])
		}
	}
	return out, nil
}
