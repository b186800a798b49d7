package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blazegg/tournament-hub/services"
)

type TeamHandler struct {
	teamService *services.TeamService
}

func NewTeamHandler(ts *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

// Create обрабатывает POST /teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID обрабатывает GET /teams/{teamID}
func (h *TeamHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// List обрабатывает GET /teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, teams, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddMember обрабатывает POST /team-members
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	var input services.AddTeamMemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.teamService.AddMember(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, member, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMembers обрабатывает GET /teams/{teamID}/members
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	members, err := h.teamService.ListMembers(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, members, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogo обрабатывает POST /teams/{teamID}/logo
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo") // "logo" - имя поля в форме
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.teamService.UploadLogo(r.Context(), teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, team, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
