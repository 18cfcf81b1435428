package service

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps any store failure the caller cannot act on.
	ErrPersistence        = errors.New("persistence failure")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrMissingCredentials = errors.New("all fields are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
