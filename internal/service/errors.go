// Package service provides business logic implementations.
package service

import "errors"

// Errors shared across services and mapped to HTTP statuses by the server.
var (
	// Validation failures. Commands reject before any mutation.
	ErrValidation       = errors.New("validation failed")
	ErrNegativeScore    = errors.New("predicted scores must be non-negative")
	ErrGameOutsideRound = errors.New("bet references a game outside the round")
	ErrDuplicateGameBet = errors.New("more than one bet for the same game")
	ErrPasswordTooShort = errors.New("password is too short")

	// State failures.
	ErrRoundClosed = errors.New("round no longer accepts bets")

	// Authentication.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUploadsDisabled    = errors.New("file uploads are not configured")
)
