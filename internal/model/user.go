package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"firstName"`
	LastName     *string   `db:"last_name" json:"lastName,omitempty"`
	PhotoPath    *string   `db:"photo_path" json:"photoPath,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// UserPatch carries the profile fields to change; nil fields stay untouched.
type UserPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	PhotoPath *string
}

// Owner is the public view of a user embedded in the records they own.
type Owner struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FirstName string    `db:"first_name" json:"firstName"`
	LastName  *string   `db:"last_name" json:"lastName,omitempty"`
	PhotoPath *string   `db:"photo_path" json:"photoPath,omitempty"`
}
