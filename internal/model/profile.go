package model

import "time"

// Profile holds the public identity information for a user, stored in
// the `profiles` table.  The primary key is shared with the `users`
// table; a profile row is created when the account registers and is
// removed only by the administrative user-deletion cascade.
//
// Fields:
//  ID        – primary key, equal to users.id.
//  FullName  – optional display name.
//  Email     – contact email, copied from the account at registration.
//  Phone     – optional phone number.
//  AvatarURL – optional public URL of the avatar image.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Profile struct {
	ID        uint64    `json:"id"`
	FullName  *string   `json:"full_name,omitempty"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
