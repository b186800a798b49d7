package models

import "time"

// UserActivity - append-only лента событий пользователя, читается по
// убыванию времени.
type UserActivity struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Text      string    `json:"text"`
	Icon      *string   `json:"icon,omitempty"`
	IconColor *string   `json:"iconColor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
