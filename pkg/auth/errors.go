package auth

import "errors"

var (
	// ErrPortInUse means the loopback callback port could not be bound.
	// Fatal for the attempt; the user must free the port and retry.
	ErrPortInUse = errors.New("callback port unavailable")

	// ErrLoginTimeout means no callback arrived within the login deadline.
	ErrLoginTimeout = errors.New("login timed out, please try again")

	// ErrNoSession means no stored session credential was found.
	ErrNoSession = errors.New("not logged in")
)

// ValidationError rejects empty required input before any network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " cannot be empty"
}
