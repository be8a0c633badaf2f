package repository

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrConflict is returned when a write collides with existing data,
	// e.g. a duplicate staff_id or a decision on an already-decided request.
	ErrConflict = errors.New("record conflicts with existing data")

	// ErrProfileCompleted is returned when a second profile-completion
	// attempt is made for the same staff record.
	ErrProfileCompleted = errors.New("profile has already been completed")

	// ErrInsufficientBalance is returned when a leave approval would
	// exceed the staff member's remaining balance for the year.
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)
