package model

import (
	"time"

	"github.com/google/uuid"
)

// Password is a stored credential entry, unrelated to the owner's own login
// password.
type Password struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Website   string    `db:"website" json:"website"`
	Username  string    `db:"username" json:"username"`
	Value     string    `db:"value" json:"value"`
	LogoPath  *string   `db:"logo_path" json:"logoPath,omitempty"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	Owner     Owner     `db:"owner" json:"user"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type PasswordPatch struct {
	Website  *string
	Username *string
	Value    *string
	LogoPath *string
}
