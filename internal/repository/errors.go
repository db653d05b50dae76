// Package repository contains the MySQL data access layer, separated
// from HTTP handlers.  Repositories implement the store interfaces
// consumed by the workflow package and return workflow.ErrNotFound for
// absent rows so the domain layer never sees sql.ErrNoRows directly.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email address
// that is already taken.  Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateRole is returned when assigning a role to a user that
// already has one.  The user_roles table carries a unique key on
// user_id; role changes go through remove-then-assign.
var ErrDuplicateRole = errors.New("user already has a role record")

// mysqlDuplicateEntry is the MySQL error number for unique key
// violations, matched by substring the way the driver surfaces it.
const mysqlDuplicateEntry = "1062"
