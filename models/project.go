package models

// Project - закешированный репозиторий с GitHub для виджета портфолио.
// JSON-форма повторяет ответ GitHub API, как его отдавал исходный виджет:
// наружу уходит id репозитория, внутренний ключ хранилища скрыт.
type Project struct {
	ID            int      `json:"-"`
	RepoID        int64    `json:"id"`
	Username      string   `json:"-"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	HTMLURL       string   `json:"html_url"`
	Homepage      string   `json:"homepage"`
	Topics        []string `json:"topics"`
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	Image         string   `json:"image"`
	RepoCreatedAt string   `json:"created_at"`
	RepoUpdatedAt string   `json:"updated_at"`
}
