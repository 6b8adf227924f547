package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoGrinder       = errors.New("no grinder configured")
	ErrDuplicateAdvice = errors.New("shot already has a recommendation")
)
