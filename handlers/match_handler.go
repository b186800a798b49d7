package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blazegg/tournament-hub/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(ms *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// Create обрабатывает POST /matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID обрабатывает GET /matches/{matchID}
func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListByTournament обрабатывает GET /tournaments/{tournamentID}/matches
func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByTournament(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, matches, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AttachResults обрабатывает POST /matches/{matchID}/results
func (h *MatchHandler) AttachResults(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Results json.RawMessage `json:"results"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if len(input.Results) == 0 {
		badRequestResponse(w, r, errors.New("results payload is required"))
		return
	}

	match, err := h.matchService.AttachResults(r.Context(), id, input.Results)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, match, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddParticipant обрабатывает POST /match-participants
func (h *MatchHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	var input services.AddMatchParticipantInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.matchService.AddParticipant(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, participant, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListParticipants обрабатывает GET /matches/{matchID}/participants
func (h *MatchHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participants, err := h.matchService.ListParticipants(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, participants, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
