package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

func Connect(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

// EnsureSchema создаёт недостающие таблицы. Схема одна и плоская,
// версионируемые миграции здесь не нужны.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username TEXT NOT NULL,
	password TEXT NOT NULL,
	email TEXT NOT NULL,
	display_name TEXT,
	photo_url TEXT,
	phone_number TEXT,
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT users_username_key UNIQUE (username),
	CONSTRAINT users_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS tournaments (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	format TEXT NOT NULL DEFAULT '',
	team_size INTEGER NOT NULL DEFAULT 1,
	max_participants INTEGER NOT NULL DEFAULT 0,
	entry_fee INTEGER NOT NULL DEFAULT 0,
	prize_pool INTEGER NOT NULL DEFAULT 0,
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	registration_start_date TIMESTAMPTZ NOT NULL,
	registration_end_date TIMESTAMPTZ NOT NULL,
	registration_open BOOLEAN NOT NULL DEFAULT TRUE,
	rules TEXT[],
	created_by INTEGER REFERENCES users(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS teams (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	captain INTEGER REFERENCES users(id),
	logo TEXT,
	tournaments_played INTEGER NOT NULL DEFAULT 0,
	badges TEXT[],
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS team_members (
	id SERIAL PRIMARY KEY,
	team_id INTEGER NOT NULL REFERENCES teams(id),
	user_id INTEGER NOT NULL REFERENCES users(id),
	joined_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tournament_registrations (
	id SERIAL PRIMARY KEY,
	tournament_id INTEGER NOT NULL,
	team_id INTEGER NOT NULL REFERENCES teams(id),
	registered_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	payment_status TEXT NOT NULL DEFAULT 'pending',
	payment_id TEXT NOT NULL DEFAULT '',
	CONSTRAINT registrations_tournament_team_key UNIQUE (tournament_id, team_id)
);

CREATE TABLE IF NOT EXISTS matches (
	id SERIAL PRIMARY KEY,
	tournament_id INTEGER NOT NULL,
	tournament_name TEXT NOT NULL DEFAULT 'Unknown Tournament',
	round INTEGER NOT NULL,
	match_number INTEGER NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ,
	status TEXT NOT NULL DEFAULT 'scheduled',
	results JSONB
);

CREATE TABLE IF NOT EXISTS match_participants (
	id SERIAL PRIMARY KEY,
	match_id INTEGER NOT NULL REFERENCES matches(id),
	team_id INTEGER NOT NULL REFERENCES teams(id),
	position INTEGER NOT NULL DEFAULT 0,
	points INTEGER NOT NULL DEFAULT 0,
	kills INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS user_profiles (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	level INTEGER NOT NULL DEFAULT 1,
	rank TEXT NOT NULL DEFAULT 'Rookie',
	verified BOOLEAN NOT NULL DEFAULT FALSE,
	tournaments_won INTEGER NOT NULL DEFAULT 0,
	matches INTEGER NOT NULL DEFAULT 0,
	tournaments INTEGER NOT NULL DEFAULT 0,
	kills INTEGER NOT NULL DEFAULT 0,
	stats JSONB,
	achievements JSONB,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_activities (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL REFERENCES users(id),
	text TEXT NOT NULL,
	icon TEXT,
	icon_color TEXT,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS projects (
	id SERIAL PRIMARY KEY,
	repo_id BIGINT NOT NULL,
	username TEXT NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	html_url TEXT NOT NULL DEFAULT '',
	homepage TEXT NOT NULL DEFAULT '',
	topics TEXT[],
	category TEXT NOT NULL DEFAULT 'other',
	language TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	repo_created_at TEXT NOT NULL DEFAULT '',
	repo_updated_at TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_registrations_tournament ON tournament_registrations (tournament_id);
CREATE INDEX IF NOT EXISTS idx_matches_tournament ON matches (tournament_id);
CREATE INDEX IF NOT EXISTS idx_activities_user ON user_activities (user_id);
CREATE INDEX IF NOT EXISTS idx_projects_username ON projects (username);
`
