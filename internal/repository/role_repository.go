package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// RoleRepo reads and writes user_roles rows.  Role resolution itself
// is the pure workflow.ResolveRole function; this repository only
// fetches the raw records and enforces the at-most-one-row rule on
// writes via the table's unique key.
type RoleRepo struct {
	db *sql.DB
}

// NewRoleRepo returns a new RoleRepo bound to the given database.
func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{db: db} }

// ListForUser returns every role record for the user.  Usually zero
// or one row; duplicates can only predate the unique constraint.
func (r *RoleRepo) ListForUser(ctx context.Context, userID uint64) ([]model.UserRole, error) {
	const q = "SELECT id, user_id, role, created_at FROM user_roles WHERE user_id = ?"
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]model.UserRole, 0, 1)
	for rows.Next() {
		var ur model.UserRole
		if err := rows.Scan(&ur.ID, &ur.UserID, &ur.Role, &ur.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, ur)
	}
	return records, rows.Err()
}

// Resolve loads the user's role records and derives the effective
// role, defaulting to "user" when no record exists.
func (r *RoleRepo) Resolve(ctx context.Context, userID uint64) (model.Role, error) {
	records, err := r.ListForUser(ctx, userID)
	if err != nil {
		return "", err
	}
	return workflow.ResolveRole(userID, records)
}

// Assign inserts a role record for the user.  A second record is
// rejected with ErrDuplicateRole: role changes go through Remove
// followed by Assign, never through silent duplicates.
func (r *RoleRepo) Assign(ctx context.Context, userID uint64, role model.Role) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO user_roles (user_id, role) VALUES (?, ?)", userID, role)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), mysqlDuplicateEntry) {
		return ErrDuplicateRole
	}
	return err
}

// Remove deletes the user's role record, returning them to the
// default role.
func (r *RoleRepo) Remove(ctx context.Context, userID uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM user_roles WHERE user_id = ?", userID)
	return err
}
