package repositories

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrProfileNotFound      = errors.New("user profile not found")

	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrRegistrationConflict = errors.New("team is already registered for this tournament")

	ErrMatchAlreadyCompleted = errors.New("match is already completed")
)
