package repository

import "errors"

// ErrNotFound reports a missing record, regardless of backend.
var ErrNotFound = errors.New("record not found")
