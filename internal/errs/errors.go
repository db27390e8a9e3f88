// Package errs contains sentinel errors shared across layers for stable
// status-code mapping at the HTTP edge.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthenticated indicates a missing, invalid, revoked or otherwise
	// unverifiable bearer token. The cause is deliberately not distinguished.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotProvisioned indicates a verified identity with no local user row.
	ErrNotProvisioned = errors.New("user not provisioned")
)
