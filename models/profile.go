package models

import "time"

type ProfileStats struct {
	WinRate            float64 `json:"winRate"`
	KDRatio            float64 `json:"kdRatio"`
	HeadshotPercentage float64 `json:"headshotPercentage"`
	AvgSurvivalTime    string  `json:"avgSurvivalTime"`
}

type Achievement struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	ColorClass string `json:"colorClass"`
}

type UserProfile struct {
	ID             int           `json:"id"`
	UserID         int           `json:"userId"`
	Level          int           `json:"level"`
	Rank           string        `json:"rank"`
	Verified       bool          `json:"verified"`
	TournamentsWon int           `json:"tournamentsWon"`
	Matches        int           `json:"matches"`
	Tournaments    int           `json:"tournaments"`
	Kills          int           `json:"kills"`
	Stats          *ProfileStats `json:"stats,omitempty"`
	Achievements   []Achievement `json:"achievements,omitempty"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}
