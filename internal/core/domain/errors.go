package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	// ErrTokenInvalid covers missing, revoked and expired refresh tokens.
	ErrTokenInvalid = errors.New("refresh token is invalid or expired")
	ErrBetNotFound  = errors.New("bet not found")
	ErrUserNotFound = errors.New("user not found")
	ErrValidation   = errors.New("validation failed")
	ErrInternal     = errors.New("internal server error")
)
