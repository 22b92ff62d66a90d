package usecase

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownRole        = errors.New("Role not found")
	ErrCatalogUnavailable = errors.New("Skill catalog unavailable")
	ErrInternal           = errors.New("internal error")
)
