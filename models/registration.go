package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type TournamentRegistration struct {
	ID            int           `json:"id"`
	TournamentID  int           `json:"tournamentId"`
	TeamID        int           `json:"teamId"`
	RegisteredAt  time.Time     `json:"registeredAt"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentID     string        `json:"paymentId"`
}
