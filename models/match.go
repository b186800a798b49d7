package models

import (
	"encoding/json"
	"time"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// Match хранит TournamentName денормализованно: имя фиксируется в момент
// создания матча для отображения без дополнительного запроса.
type Match struct {
	ID             int             `json:"id"`
	TournamentID   int             `json:"tournamentId"`
	TournamentName string          `json:"tournamentName"`
	Round          int             `json:"round"`
	MatchNumber    int             `json:"matchNumber"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        *time.Time      `json:"endTime,omitempty"`
	Status         MatchStatus     `json:"status"`
	Results        json.RawMessage `json:"results,omitempty"`
}

// Results и MatchParticipant описывают итог матча дважды (сводка + построчно);
// согласованность между ними ничем не гарантируется.
type MatchParticipant struct {
	ID       int `json:"id"`
	MatchID  int `json:"matchId"`
	TeamID   int `json:"teamId"`
	Position int `json:"position"`
	Points   int `json:"points"`
	Kills    int `json:"kills"`
}
