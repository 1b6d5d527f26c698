package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrCorruptedGame  = errors.New("stored game is corrupted")
	ErrUnknownStorage = errors.New("unknown storage driver")
	ErrEmptyRedisAddr = errors.New("redis address string is empty")
)
