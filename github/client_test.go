package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/blazegg/tournament-hub/repositories"
)

const reposPayload = `[
	{
		"id": 101,
		"name": "tournament-ui",
		"description": "Frontend for the tournament hub",
		"html_url": "https://github.com/player1/tournament-ui",
		"homepage": "",
		"topics": ["react", "frontend"],
		"language": "TypeScript",
		"created_at": "2025-01-10T00:00:00Z",
		"updated_at": "2026-07-01T00:00:00Z"
	},
	{
		"id": 102,
		"name": "aim-predictor",
		"description": null,
		"html_url": "https://github.com/player1/aim-predictor",
		"homepage": "https://example.com",
		"topics": [],
		"language": "Python",
		"created_at": "2024-05-01T00:00:00Z",
		"updated_at": "2026-06-01T00:00:00Z"
	},
	{
		"id": 103,
		"name": "infra",
		"description": "Cluster configs",
		"html_url": "https://github.com/player1/infra",
		"homepage": "",
		"topics": ["kubernetes", "devops"],
		"language": "Go",
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": "2026-05-01T00:00:00Z"
	}
]`

func newFakeGitHub(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/users/player1/repos" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("expected per_page=10, got %q", got)
		}
		if got := r.URL.Query().Get("sort"); got != "updated" {
			t.Errorf("expected sort=updated, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reposPayload))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestProjectsFetchAndCategorize(t *testing.T) {
	var hits atomic.Int32
	server := newFakeGitHub(t, &hits)
	client := NewClient(server.URL, repositories.NewMemStorage())

	projects, err := client.Projects(context.Background(), "player1")
	if err != nil {
		t.Fatalf("projects: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(projects))
	}

	byName := map[string]string{}
	for _, p := range projects {
		byName[p.Name] = p.Category
	}
	if byName["tournament-ui"] != "web" {
		t.Fatalf("expected tournament-ui categorized as web, got %q", byName["tournament-ui"])
	}
	if byName["aim-predictor"] != "ai" {
		t.Fatalf("expected aim-predictor categorized as ai, got %q", byName["aim-predictor"])
	}
	if byName["infra"] != "devops" {
		t.Fatalf("expected infra categorized as devops, got %q", byName["infra"])
	}

	for _, p := range projects {
		if p.Image == "" {
			t.Fatalf("expected placeholder image for %s", p.Name)
		}
		if p.Name == "aim-predictor" && p.Description != "No description available" {
			t.Fatalf("expected description fallback, got %q", p.Description)
		}
	}
}

func TestProjectsServedFromCache(t *testing.T) {
	var hits atomic.Int32
	server := newFakeGitHub(t, &hits)
	client := NewClient(server.URL, repositories.NewMemStorage())
	ctx := context.Background()

	first, err := client.Projects(ctx, "player1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := client.Projects(ctx, "player1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if hits.Load() != 1 {
		t.Fatalf("expected exactly one upstream request, got %d", hits.Load())
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical result sets, got %d and %d", len(first), len(second))
	}
}

func TestProjectsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, repositories.NewMemStorage())
	if _, err := client.Projects(context.Background(), "player1"); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}
