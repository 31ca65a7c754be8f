package types

import (
	"errors"
	"net/http"
)

// Error taxonomy surfaced by the core workflows. Handlers match with
// errors.Is and never leak raw storage errors to clients.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCapacity     = errors.New("party size not allowed for this package")
	ErrDate         = errors.New("start date must be at least one day in the future")
	ErrConflict     = errors.New("conflicting record")
	ErrPersistence  = errors.New("storage failure")
	ErrAuth         = errors.New("invalid credentials")
)

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrCapacity), errors.Is(err, ErrDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
