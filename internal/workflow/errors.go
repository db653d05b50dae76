// Package workflow implements the item lifecycle and claim moderation
// rules.  Every operation receives the caller's identity and role
// explicitly so that permission checks are testable without any
// ambient session state.  Storage is reached through the narrow
// interfaces in stores.go; the MySQL-backed implementations live in
// the repository package.
package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors returned by workflow operations.  Handlers translate
// these into HTTP responses; none of them is retryable with the same
// arguments.
var (
	// ErrPermissionDenied is returned when the caller is neither the
	// owner of the resource nor (where allowed) an administrator.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound is returned when a referenced entity does not exist.
	// Store implementations must return it for absent rows.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned for an illegal state-machine
	// edge, including any attempt to leave a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSelfClaim is returned when a user tries to claim their own item.
	ErrSelfClaim = errors.New("cannot claim your own item")

	// ErrItemNotClaimable is returned when the target item is in a
	// terminal state and no longer accepts claims.
	ErrItemNotClaimable = errors.New("item is no longer claimable")

	// ErrAmbiguousRole is returned when conflicting role records exist
	// for one user.  Writes reject duplicates, so this only surfaces
	// for data predating the unique constraint.
	ErrAmbiguousRole = errors.New("ambiguous role records for user")
)

// ValidationError reports malformed input as a set of field-level
// violations.  The caller can correct the input and retry.
type ValidationError struct {
	Fields map[string]string
}

// Error joins the violated fields into a deterministic message.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// PersistenceError wraps an infrastructure failure from the storage
// layer.  When one is observed the caller must not assume any domain
// validation took place.  Safe to retry after backoff; the workflow
// itself performs no automatic retry.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persistence failure: %v", e.Err) }

// Unwrap exposes the underlying error for errors.Is/As.
func (e *PersistenceError) Unwrap() error { return e.Err }

// wrapStore classifies an error coming back from a store.  Domain
// sentinels pass through untouched; anything else is infrastructure
// and becomes a PersistenceError.
func wrapStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrAmbiguousRole) {
		return err
	}
	return &PersistenceError{Err: err}
}
