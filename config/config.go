package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort   int
	JWTSecretKey string
	AdminEmail   string

	// DATABASE_URL пустой - работаем на in-memory хранилище.
	DatabaseURL  string
	SeedDemoData bool

	GitHubAPIBaseURL string

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	seed := false
	if seedStr := os.Getenv("SEED_DEMO_DATA"); seedStr != "" {
		seed, err = strconv.ParseBool(seedStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_DEMO_DATA environment variable: %w", err)
		}
	}

	githubBase := os.Getenv("GITHUB_API_BASE_URL")
	if githubBase == "" {
		githubBase = "https://api.github.com"
	}

	cfg := &Config{
		ServerPort:       port,
		JWTSecretKey:     jwtKey,
		AdminEmail:       os.Getenv("ADMIN_EMAIL"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SeedDemoData:     seed,
		GitHubAPIBaseURL: githubBase,

		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	return cfg, nil
}

// R2Configured сообщает, заданы ли все параметры внешнего хранилища файлов.
func (c *Config) R2Configured() bool {
	return c.R2AccountID != "" &&
		c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" &&
		c.R2PublicBaseURL != ""
}
