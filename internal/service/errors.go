package service

import "errors"

// ErrValidation marks malformed or missing input. Wrapped with detail at the
// point of failure; handlers match it with errors.Is.
var ErrValidation = errors.New("validation failed")
