package routes

import (
	"github.com/blazegg/tournament-hub/handlers"
	"github.com/blazegg/tournament-hub/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Match      *handlers.MatchHandler
	GitHub     *handlers.GitHubHandler
}

// SetupRoutes собирает роутер: публичные чтения, запись под bearer-токеном,
// кураторские операции дополнительно под админским email.
func SetupRoutes(h Handlers, jwtSecret []byte, adminEmail string) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", h.Auth.Register)
		api.Post("/auth/login", h.Auth.Login)

		api.Route("/users", func(r chi.Router) {
			r.Get("/{userID}", h.User.GetByID)
			r.Get("/{userID}/profile", h.User.GetProfile)
			r.Get("/{userID}/activities", h.User.ListActivities)
		})

		api.Route("/tournaments", func(r chi.Router) {
			// Публичные маршруты для просмотра турниров
			r.Get("/", h.Tournament.List)
			r.Get("/{tournamentID}", h.Tournament.GetByID)
			r.Get("/slug/{slug}", h.Tournament.GetBySlug)
			r.Get("/{tournamentID}/registrations", h.Tournament.ListRegistrations)
			r.Get("/{tournamentID}/matches", h.Match.ListByTournament)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Post("/", h.Tournament.Create)
			})

			// Кураторские операции
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.RequireAdmin(adminEmail))
				r.Patch("/{tournamentID}", h.Tournament.Update)
				r.Delete("/{tournamentID}", h.Tournament.Delete)
			})
		})

		api.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.List)
			r.Get("/{teamID}", h.Team.GetByID)
			r.Get("/{teamID}/members", h.Team.ListMembers)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Post("/", h.Team.Create)
				r.Post("/{teamID}/logo", h.Team.UploadLogo)
			})
		})

		api.Route("/matches", func(r chi.Router) {
			r.Get("/{matchID}", h.Match.GetByID)
			r.Get("/{matchID}/participants", h.Match.ListParticipants)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Post("/", h.Match.Create)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(jwtSecret))
				r.Use(middleware.RequireAdmin(adminEmail))
				r.Post("/{matchID}/results", h.Match.AttachResults)
			})
		})

		api.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Post("/tournament-registrations", h.Tournament.Register)
			r.Post("/team-members", h.Team.AddMember)
			r.Post("/match-participants", h.Match.AddParticipant)
			r.Post("/user-profiles", h.User.CreateProfile)
			r.Post("/user-activities", h.User.CreateActivity)
		})

		api.Get("/github/projects", h.GitHub.Projects)
	})

	return router
}
