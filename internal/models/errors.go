package models

import "errors"

var (
	// ErrNotFound is returned for unknown users, modules or item keys
	ErrNotFound = errors.New("not found")

	// ErrAlreadyInitialized is returned when a user's completion records
	// have already been created
	ErrAlreadyInitialized = errors.New("already initialized")
)
