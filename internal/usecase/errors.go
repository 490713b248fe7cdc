package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrOutOfTurn             = errors.New("not this team's turn to pick")
	ErrInvariantViolation    = errors.New("draft state invariant violated")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
