package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller does not own the resource it tried to modify.
var ErrForbidden = errors.New("operation not permitted")

// ErrUpstream indicates an upstream provider was unavailable or returned a
// malformed/unsuccessful response. Never retried automatically; the client
// surfaces it as a one-shot message with a manual retry action.
var ErrUpstream = errors.New("upstream provider error")

// ErrAlreadyMarked indicates a different journey already holds the
// next-journey slot. The caller must unmark it first.
var ErrAlreadyMarked = errors.New("another journey is already marked as next")
