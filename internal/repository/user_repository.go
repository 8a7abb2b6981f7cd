package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mercado-service/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error)
}

const userColumns = `id, email, password_hash, first_name, last_name, photo_path, created_at, updated_at`

// ownerColumns selects the sanitized owner of a record joined as "u".
const ownerColumns = `u.id AS "owner.id", u.email AS "owner.email", u.first_name AS "owner.first_name", ` +
	`u.last_name AS "owner.last_name", u.photo_path AS "owner.photo_path"`

type postgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `INSERT INTO users (email, password_hash, first_name, last_name) VALUES ($1, $2, $3, $4) RETURNING ` + userColumns

	var created model.User
	err := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.FirstName, user.LastName).StructScan(&created)
	if err != nil {
		return nil, translate(err)
	}

	return &created, nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, translate(err)
	}

	return &user, nil
}

func (r *postgresUserRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (*model.User, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.FirstName != nil {
		set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		set("email", *patch.Email)
	}
	if patch.PhotoPath != nil {
		set("photo_path", *patch.PhotoPath)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, id)
	}

	setClauses = append(setClauses, "updated_at = now()")
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d RETURNING %s", strings.Join(setClauses, ", "), argID, userColumns)
	args = append(args, id)

	var user model.User
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		return nil, translate(err)
	}

	return &user, nil
}
