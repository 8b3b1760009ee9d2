package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateTitle  = errors.New("title already exists")
	ErrLoanConflict    = errors.New("book already has an outstanding loan")
	ErrAlreadyReturned = errors.New("loan already returned")
	ErrInvalidEmail    = errors.New("email format is invalid")
)
