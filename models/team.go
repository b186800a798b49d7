package models

import "time"

type Team struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	Captain           int       `json:"captain"`
	Logo              *string   `json:"logo,omitempty"`
	TournamentsPlayed int       `json:"tournamentsPlayed"`
	Badges            []string  `json:"badges"`
	CreatedAt         time.Time `json:"createdAt"`
}

// TeamMember - связка многие-ко-многим: пользователь может состоять в
// нескольких командах.
type TeamMember struct {
	ID       int       `json:"id"`
	TeamID   int       `json:"teamId"`
	UserID   int       `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}
