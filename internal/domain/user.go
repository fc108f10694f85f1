package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is owned by the identity flow: rows are created or refreshed on
// login and never mutated by the venue features.
type User struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	FirstName       *string   `db:"first_name" json:"firstName,omitempty"`
	LastName        *string   `db:"last_name" json:"lastName,omitempty"`
	ProfileImageURL *string   `db:"profile_image_url" json:"profileImageUrl,omitempty"`
	PasswordHash    []byte    `db:"password_hash" json:"-"`
	PasswordSalt    []byte    `db:"password_salt" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Session is a server-side record of an issued token. A token is only
// accepted while its session row is active and unexpired, so logout can
// revoke JWTs before they expire.
type Session struct {
	ID        int64     `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
	IsActive  bool      `db:"is_active"`
}
