package auth

import "errors"

var (
	ErrDuplicateEmail     = errors.New("auth: email is already registered")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrMissingFields      = errors.New("auth: username, email and password are required")
)
