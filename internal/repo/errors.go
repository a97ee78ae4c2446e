package repo

import "errors"

var (
	// ErrPersistence wraps every failure of the underlying store, including
	// values that no longer decode.
	ErrPersistence = errors.New("persistence failure")
	// ErrMissingOwner is returned when no owner id is given.
	ErrMissingOwner = errors.New("owner id is required")

	ErrProductNotFound       = errors.New("product not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("unique constraint violation")
)
