package apperrors

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrNotInitialized       = errors.New("state not initialized")
	ErrTaskNameRequired     = errors.New("task name is required")
	ErrInsufficientCoins    = errors.New("insufficient coins")
	ErrUnknownItem          = errors.New("unknown shop item")
	ErrNoActiveCrucible     = errors.New("no active crucible")
	ErrCrucibleExists       = errors.New("a crucible is already active")
	ErrCrucibleNotCompleted = errors.New("crucible is not completed")
	ErrInvalidTransition    = errors.New("invalid timer transition")
	ErrAdvisoryUnavailable  = errors.New("advisory unavailable")
)
