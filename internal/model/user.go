package model

import "time"

// Role is the authorization tag consulted by permission checks.  The
// absence of a user_roles row implies RoleUser.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account record in the `users` table.  Profiles
// carry the public identity; this struct is only consumed by the
// authentication layer.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole is a row in the `user_roles` table.  At most one row per
// user is permitted at write time; read-side resolution treats
// conflicting duplicates left over from older data as an error rather
// than silently picking one.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the role applies to.
//  Role      – RoleUser or RoleAdmin.
//  CreatedAt – timestamp of creation.
type UserRole struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only a
// SHA-256 hash of the raw token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     `json:"id"`
	UserID    uint64     `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
