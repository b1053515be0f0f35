package models

import "errors"

// Domain specific errors surfaced by the planning engine and its HTTP layer.
var (
	ErrNotFound         = errors.New("requested item not found")
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidInput     = errors.New("invalid trip request")
	ErrMissingSelection = errors.New("selected offer not found in catalog")
)
