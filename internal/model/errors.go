package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on unique constraint violations.
	ErrAlreadyExists = errors.New("already exists")
	// ErrLocked is returned when a lock is held by another holder.
	ErrLocked = errors.New("locked")
)
