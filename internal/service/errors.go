package service

import "errors"

// ErrInvalidInput marks errors caused by caller-supplied data rather than
// storage failures.
var ErrInvalidInput = errors.New("invalid input")
