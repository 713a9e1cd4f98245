package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidFrame = errors.New("invalid frame")
	ErrInvalidGame  = errors.New("invalid game")
)
