package domain

import "errors"

// Sentinel errors shared across usecases. The delivery layer maps each to an
// HTTP status: ErrUnauthorized 401, ErrForbidden 403, ErrNotFound 404,
// ErrValidation 400, ErrConflict 409, ErrNotAssigned 404, anything else 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrNotAssigned  = errors.New("no course assigned")
)
