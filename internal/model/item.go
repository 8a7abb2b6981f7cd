package model

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	PhotoPath   *string   `db:"photo_path" json:"photoPath,omitempty"`
	Price       float64   `db:"price" json:"price"`
	UserID      uuid.UUID `db:"user_id" json:"-"`
	Owner       Owner     `db:"owner" json:"user"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type ItemPatch struct {
	Title       *string
	Description *string
	PhotoPath   *string
	Price       *float64
}
