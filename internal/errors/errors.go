package errors

import "errors"

var (
	// ErrUserNotFound is returned when a user lookup matches nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrActiveUserNotFound is returned when deactivation finds no ACTIVE user.
	ErrActiveUserNotFound = errors.New("active user not found")
	// ErrMembershipNotFound is returned when a membership lookup matches nothing.
	ErrMembershipNotFound = errors.New("membership not found")
)
