package users

import "errors"

var (
	// ErrNotFound indicates the user does not exist.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateEmail indicates a registration conflict on email.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
