package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrEmptyText      = errors.New("empty text")
	ErrTextTooLong    = errors.New("text too long")
	ErrInvalidPersona = errors.New("invalid persona")
	ErrRateLimited    = errors.New("rate limited")
)
