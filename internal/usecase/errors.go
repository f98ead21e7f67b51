package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrBettingWindowClosed   = errors.New("betting window closed")
	ErrEntryLimitReached     = errors.New("weekly entry limit reached")
	ErrInsufficientPoints    = errors.New("insufficient predictor points")
	ErrPicksNotRevealed      = errors.New("picks not revealed yet")
)
