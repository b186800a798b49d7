package services

import "errors"

// Общие ошибки сервисного слоя, используемые в маппинге HTTP.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed           = errors.New("validation failed")
	ErrPasswordTooShort           = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrTeamNameRequired           = errors.New("team name is required")
	ErrTournamentNameRequired     = errors.New("tournament name is required")
	ErrTournamentInvalidRegDate   = errors.New("tournament registration end date must be after registration start date")
	ErrTournamentInvalidDateRange = errors.New("tournament end date must be after start date")
	ErrTournamentInvalidCapacity  = errors.New("tournament max participants must be positive")
	ErrTournamentInvalidTeamSize  = errors.New("tournament team size must be positive")
	ErrInvalidPaymentStatus       = errors.New("payment status must be pending, completed or failed")
	ErrMatchAlreadyCompleted      = errors.New("match results are already recorded")

	// Конфликты
	ErrUserEmailConflict    = errors.New("email address is already in use")
	ErrUserUsernameConflict = errors.New("username is already in use")
	ErrRegistrationConflict = errors.New("team is already registered for this tournament")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound         = errors.New("user not found")
	ErrTeamNotFound         = errors.New("team not found")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrMatchNotFound        = errors.New("match not found")
	ErrProfileNotFound      = errors.New("user profile not found")
	ErrRegistrationNotFound = errors.New("registration not found")

	ErrUploadsDisabled = errors.New("file uploads are not configured")
)
