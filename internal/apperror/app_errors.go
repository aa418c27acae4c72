package apperror

import "errors"

var (
	ErrGameOver        = errors.New("game is over")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrInvalidMove     = errors.New("invalid move")
	ErrFallerActive    = errors.New("faller is still active")
	ErrSessionNotFound = errors.New("session not found")
)
