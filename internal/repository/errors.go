// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios.
package repository

import "errors"

// ErrConflict is returned when a write trips a uniqueness key that the
// more specific slot sentinels do not cover. Handlers should translate
// this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
