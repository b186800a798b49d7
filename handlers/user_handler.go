package handlers

import (
	"net/http"

	"github.com/blazegg/tournament-hub/services"
)

type UserHandler struct {
	authService    *services.AuthService
	profileService *services.ProfileService
}

func NewUserHandler(authService *services.AuthService, profileService *services.ProfileService) *UserHandler {
	return &UserHandler{
		authService:    authService,
		profileService: profileService,
	}
}

// GetByID обрабатывает GET /users/{userID}
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetProfile обрабатывает GET /users/{userID}/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, profile, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListActivities обрабатывает GET /users/{userID}/activities
func (h *UserHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	activities, err := h.profileService.ListActivities(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, activities, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateProfile обрабатывает POST /user-profiles
func (h *UserHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var input services.CreateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	profile, err := h.profileService.CreateProfile(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, profile, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateActivity обрабатывает POST /user-activities
func (h *UserHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var input services.CreateActivityInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	activity, err := h.profileService.CreateActivity(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, activity, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
