package handlers

import (
	"errors"
	"net/http"

	"github.com/blazegg/tournament-hub/github"
)

type GitHubHandler struct {
	client *github.Client
}

func NewGitHubHandler(client *github.Client) *GitHubHandler {
	return &GitHubHandler{client: client}
}

// Projects обрабатывает GET /github/projects?username=…
func (h *GitHubHandler) Projects(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		badRequestResponse(w, r, errors.New("username query parameter is required"))
		return
	}

	projects, err := h.client.Projects(r.Context(), username)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, projects, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
