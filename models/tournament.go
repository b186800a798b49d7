package models

import "time"

// Tournament представляет турнир. ParticipantsCount - производное поле:
// всегда пересчитывается из регистраций при чтении и никогда не хранится
// как самостоятельное значение.
type Tournament struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	Slug                  string    `json:"slug"`
	Description           string    `json:"description"`
	Format                string    `json:"format"`
	TeamSize              int       `json:"teamSize"`
	MaxParticipants       int       `json:"maxParticipants"`
	EntryFee              int       `json:"entryFee"`
	PrizePool             int       `json:"prizePool"`
	StartDate             time.Time `json:"startDate"`
	EndDate               time.Time `json:"endDate"`
	RegistrationStartDate time.Time `json:"registrationStartDate"`
	RegistrationEndDate   time.Time `json:"registrationEndDate"`
	RegistrationOpen      bool      `json:"registrationOpen"`
	Rules                 []string  `json:"rules"`
	CreatedBy             int       `json:"createdBy"`
	ParticipantsCount     int       `json:"participantsCount"`
	CreatedAt             time.Time `json:"createdAt"`
}
