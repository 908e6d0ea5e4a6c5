package domain

import "errors"

var (
	// ErrIdentityNotFound is returned on login with an unregistered email.
	ErrIdentityNotFound = errors.New("identity not found")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates a missing user record for a known identity.
	ErrUserNotFound = errors.New("user record not found")
	// ErrSessionNotFound is returned for unknown or expired session tokens.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRiddleNotFound indicates the riddle pool could not be loaded.
	ErrRiddleNotFound = errors.New("riddle not found")
	// ErrEmptyPool indicates a riddle source was configured without riddles.
	// A configuration error, fatal at startup, never a runtime condition.
	ErrEmptyPool = errors.New("riddle pool is empty")
)
