package utils

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")
	ErrPOINotFound   = errors.New("poi not found")
)
