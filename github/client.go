// Package github реализует бэкенд виджета портфолио: список репозиториев
// пользователя с GitHub, закешированный в хранилище приложения.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/blazegg/tournament-hub/models"
	"github.com/blazegg/tournament-hub/repositories"
	"golang.org/x/sync/errgroup"
)

const DefaultBaseURL = "https://api.github.com"

type Client struct {
	client  *http.Client
	baseURL string
	store   repositories.Storage
}

func NewClient(baseURL string, store repositories.Storage) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		store:   store,
	}
}

type repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Homepage    string   `json:"homepage"`
	Topics      []string `json:"topics"`
	Language    string   `json:"language"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Projects возвращает проекты пользователя: из кеша, если он уже наполнен,
// иначе забирает с GitHub и кеширует.
func (c *Client) Projects(ctx context.Context, username string) ([]models.Project, error) {
	cached, err := c.store.ListProjectsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to read project cache: %w", err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	repos, err := c.fetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	projects := make([]models.Project, len(repos))
	for i, r := range repos {
		description := r.Description
		if description == "" {
			description = "No description available"
		}
		topics := r.Topics
		if topics == nil {
			topics = []string{}
		}
		projects[i] = models.Project{
			RepoID:        r.ID,
			Username:      username,
			Name:          r.Name,
			Description:   description,
			HTMLURL:       r.HTMLURL,
			Homepage:      r.Homepage,
			Topics:        topics,
			Category:      categorize(r),
			Language:      r.Language,
			Image:         placeholderImage(i),
			RepoCreatedAt: r.CreatedAt,
			RepoUpdatedAt: r.UpdatedAt,
		}
	}

	g, gCtx := errgroup.WithContext(ctx)
	for i := range projects {
		p := &projects[i]
		g.Go(func() error {
			return c.store.CreateProject(gCtx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to cache projects: %w", err)
	}

	return projects, nil
}

func (c *Client) fetchRepos(ctx context.Context, username string) ([]repo, error) {
	url := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=10", c.baseURL, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build GitHub request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach GitHub API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API error: %s", resp.Status)
	}

	var repos []repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub response: %w", err)
	}
	return repos, nil
}

func hasAnyTopic(topics []string, wanted ...string) bool {
	for _, t := range topics {
		for _, w := range wanted {
			if t == w {
				return true
			}
		}
	}
	return false
}

func categorize(r repo) string {
	switch {
	case hasAnyTopic(r.Topics, "react-native", "android", "ios", "flutter", "mobile"):
		return "mobile"
	case hasAnyTopic(r.Topics, "web", "react", "vue", "angular", "nextjs", "gatsby", "frontend"),
		r.Language == "JavaScript", r.Language == "TypeScript", r.Language == "HTML", r.Language == "CSS":
		return "web"
	case hasAnyTopic(r.Topics, "ai", "machine-learning", "ml", "data-science", "tensorflow", "pytorch"),
		r.Language == "Python", r.Language == "R", r.Language == "Julia":
		return "ai"
	case hasAnyTopic(r.Topics, "devops", "aws", "azure", "cloud", "kubernetes", "docker"):
		return "devops"
	default:
		return "other"
	}
}

var placeholderImages = []string{
	"https://images.unsplash.com/photo-1551288049-bebda4e38f71?auto=format&fit=crop&w=800&h=400",
	"https://images.unsplash.com/photo-1526498460520-4c246339dccb?auto=format&fit=crop&w=800&h=400",
	"https://images.unsplash.com/photo-1557821552-17105176677c?auto=format&fit=crop&w=800&h=400",
	"https://images.unsplash.com/photo-1555952517-2e8e729e0b44?auto=format&fit=crop&w=800&h=400",
	"https://images.unsplash.com/photo-1552068751-34cb5cf055b3?auto=format&fit=crop&w=800&h=400",
	"https://images.unsplash.com/photo-1550063873-ab792950096b?auto=format&fit=crop&w=800&h=400",
}

func placeholderImage(index int) string {
	return placeholderImages[index%len(placeholderImages)]
}
