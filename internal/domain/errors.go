package domain

import "errors"

// Repositories and services wrap these; the HTTP layer maps them with errors.Is.
var (
	ErrNotFound     = errors.New("drink not found")
	ErrInvalidInput = errors.New("invalid drink")
	ErrConflict     = errors.New("drink title taken")
)
