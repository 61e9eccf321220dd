package services

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("already exists")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnauthenticated  = errors.New("unauthenticated")
)
