package handlers

import (
	"net/http"

	"github.com/blazegg/tournament-hub/middleware"
	"github.com/blazegg/tournament-hub/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(ts *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: ts}
}

// Create обрабатывает POST /tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "authentication required to create tournament")
		return
	}

	var input services.CreateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Create(r.Context(), user.ID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID обрабатывает GET /tournaments/{tournamentID}
func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBySlug обрабатывает GET /tournaments/slug/{slug}
func (h *TournamentHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slugValue := chi.URLParam(r, "slug")
	if slugValue == "" {
		notFoundResponse(w, r)
		return
	}

	tournament, err := h.tournamentService.GetBySlug(r.Context(), slugValue)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List обрабатывает GET /tournaments
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tournaments, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update обрабатывает PATCH /tournaments/{tournamentID}
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournamentService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete обрабатывает DELETE /tournaments/{tournamentID}
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournamentService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Register обрабатывает POST /tournament-registrations
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registration, err := h.tournamentService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, registration, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRegistrations обрабатывает GET /tournaments/{tournamentID}/registrations
func (h *TournamentHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	registrations, err := h.tournamentService.ListRegistrations(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, registrations, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
