package services

import "errors"

// Expected failure conditions returned by service operations. Controllers
// translate these into user-facing responses; anything else is a server error.
var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")
	ErrNotOwner          = errors.New("not allowed to modify this record")
)
