package domain

import "errors"

// Input validation.
var (
	ErrInvalidEmailFormat = errors.New("Please enter a valid email address.")
	ErrWeakPassword       = errors.New("Password must be at least 3 characters long.")
	ErrMissingFirstName   = errors.New("First name is required.")
	ErrMissingPassword    = errors.New("Password is required.")
	ErrPasswordTooLong    = errors.New("Password must be at most 72 bytes long.")
)

// Business outcomes.
var (
	ErrEmailAlreadyExists = errors.New("Unprocessable Entity. Email Already Exists.")
	ErrUnknownEmail       = errors.New("The email you entered is not registered. Please check your credentials or sign up.")
	ErrUserNotFound       = errors.New("user not found")
)

// Authentication.
var (
	ErrInvalidPassword = errors.New("Invalid password. Please check your credentials and try again.")
	ErrUnauthorized    = errors.New("The token is invalid. Unauthorized access error.")
	ErrInvalidToken    = errors.New("invalid token")
)

// ErrInternal hides unexpected faults from callers.
var ErrInternal = errors.New("Internal server error. Please try again.")
