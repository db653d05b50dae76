package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/lost-and-found/internal/model"
	"github.com/iliyamo/lost-and-found/internal/workflow"
)

// ProfileRepo provides persistence for public user profiles.
type ProfileRepo struct {
	db *sql.DB
}

// NewProfileRepo returns a new ProfileRepo bound to the given database.
func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func scanProfile(row interface{ Scan(...any) error }) (*model.Profile, error) {
	var (
		p         model.Profile
		fullName  sql.NullString
		phone     sql.NullString
		avatarURL sql.NullString
	)
	err := row.Scan(&p.ID, &fullName, &p.Email, &phone, &avatarURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if fullName.Valid {
		p.FullName = &fullName.String
	}
	if phone.Valid {
		p.Phone = &phone.String
	}
	if avatarURL.Valid {
		p.AvatarURL = &avatarURL.String
	}
	return &p, nil
}

// Get returns the profile for the given user ID, or workflow.ErrNotFound.
func (r *ProfileRepo) Get(ctx context.Context, userID uint64) (*model.Profile, error) {
	const q = "SELECT id, full_name, email, phone, avatar_url, created_at, updated_at FROM profiles WHERE id = ?"
	p, err := scanProfile(r.db.QueryRowContext(ctx, q, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Update writes the owner-editable profile fields.  Only the profile
// owner reaches this through the handlers.
func (r *ProfileRepo) Update(ctx context.Context, userID uint64, fullName, phone *string) (*model.Profile, error) {
	const q = "UPDATE profiles SET full_name = ?, phone = ? WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, fullName, phone, userID); err != nil {
		return nil, err
	}
	return r.Get(ctx, userID)
}

// UpdateAvatar stores the public URL of a freshly uploaded avatar.
func (r *ProfileRepo) UpdateAvatar(ctx context.Context, userID uint64, url string) error {
	_, err := r.db.ExecContext(ctx, "UPDATE profiles SET avatar_url = ? WHERE id = ?", url, userID)
	return err
}

// AdminUser is a profile joined with its resolved role and item count
// for the admin user-management table.
type AdminUser struct {
	model.Profile
	Role      model.Role `json:"role"`
	ItemCount int        `json:"item_count"`
}

// ListAll returns every profile with its role (defaulting to "user"
// when no user_roles row exists) and the number of items the user has
// reported.  Backs the admin users tab.
func (r *ProfileRepo) ListAll(ctx context.Context) ([]AdminUser, error) {
	const q = `SELECT p.id, p.full_name, p.email, p.phone, p.avatar_url, p.created_at, p.updated_at,
	                  COALESCE(ur.role, 'user'),
	                  (SELECT COUNT(*) FROM items i WHERE i.user_id = p.id)
	           FROM profiles p
	           LEFT JOIN user_roles ur ON ur.user_id = p.id
	           ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]AdminUser, 0)
	for rows.Next() {
		var (
			u         AdminUser
			fullName  sql.NullString
			phone     sql.NullString
			avatarURL sql.NullString
		)
		if err := rows.Scan(
			&u.ID, &fullName, &u.Email, &phone, &avatarURL, &u.CreatedAt, &u.UpdatedAt,
			&u.Role, &u.ItemCount,
		); err != nil {
			return nil, err
		}
		if fullName.Valid {
			u.FullName = &fullName.String
		}
		if phone.Valid {
			u.Phone = &phone.String
		}
		if avatarURL.Valid {
			u.AvatarURL = &avatarURL.String
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
