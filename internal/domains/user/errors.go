package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrAdminNotFound = errors.New("admin not found")
)

// Service-level (business logic) errors
var (
	// Signup found the email taken.
	ErrEmailAlreadyRegistered = errors.New("user already registered")
	// AddAdmin found the email taken. The wording is historical: the
	// check only compares the email, not the role, so the "admin" in the
	// message can in fact be a regular user.
	ErrEmailAlreadyAdmin = errors.New("user is already admin")

	ErrPasswordIncorrect = errors.New("password incorrect")

	// Reset-password token was valid but lacks the forgotPassword marker
	// (i.e. someone replayed a session token against the reset endpoint).
	ErrNotResetToken = errors.New("unauthorized action")
	ErrInvalidToken  = errors.New("invalid token")
)
