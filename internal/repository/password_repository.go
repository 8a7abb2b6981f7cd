package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mercado-service/internal/model"
)

// PasswordRepository never reads across owners.
type PasswordRepository interface {
	Create(ctx context.Context, password *model.Password) (*model.Password, error)
	FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Password, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.PasswordPatch) (*model.Password, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error)
}

const passwordColumns = `p.id, p.website, p.username, p.value, p.logo_path, p.user_id, p.created_at, p.updated_at, ` + ownerColumns

type postgresPasswordRepository struct {
	db *sqlx.DB
}

func NewPostgresPasswordRepository(db *sqlx.DB) PasswordRepository {
	return &postgresPasswordRepository{db: db}
}

func (r *postgresPasswordRepository) Create(ctx context.Context, password *model.Password) (*model.Password, error) {
	query := `
		WITH p AS (
			INSERT INTO passwords (website, username, value, logo_path, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + passwordColumns + ` FROM p JOIN users u ON u.id = p.user_id`

	var created model.Password
	err := r.db.QueryRowxContext(ctx, query,
		password.Website, password.Username, password.Value, password.LogoPath, password.UserID,
	).StructScan(&created)
	if err != nil {
		return nil, translate(err)
	}

	return &created, nil
}

func (r *postgresPasswordRepository) FindAll(ctx context.Context, ownerID uuid.UUID) ([]model.Password, error) {
	passwords := []model.Password{}
	query := `SELECT ` + passwordColumns + ` FROM passwords p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1 ORDER BY p.created_at DESC`
	if err := r.db.SelectContext(ctx, &passwords, query, ownerID); err != nil {
		return nil, err
	}

	return passwords, nil
}

func (r *postgresPasswordRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	var password model.Password
	query := `SELECT ` + passwordColumns + ` FROM passwords p JOIN users u ON u.id = p.user_id WHERE p.id = $1 AND p.user_id = $2`
	if err := r.db.GetContext(ctx, &password, query, id, ownerID); err != nil {
		return nil, translate(err)
	}

	return &password, nil
}

func (r *postgresPasswordRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.PasswordPatch) (*model.Password, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Website != nil {
		set("website", *patch.Website)
	}
	if patch.Username != nil {
		set("username", *patch.Username)
	}
	if patch.Value != nil {
		set("value", *patch.Value)
	}
	if patch.LogoPath != nil {
		set("logo_path", *patch.LogoPath)
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(`
		WITH p AS (
			UPDATE passwords SET %s WHERE id = $%d AND user_id = $%d
			RETURNING *
		)
		SELECT %s FROM p JOIN users u ON u.id = p.user_id`,
		strings.Join(setClauses, ", "), argID, argID+1, passwordColumns)
	args = append(args, id, ownerID)

	var password model.Password
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&password); err != nil {
		return nil, translate(err)
	}

	return &password, nil
}

func (r *postgresPasswordRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Password, error) {
	query := `
		WITH p AS (
			DELETE FROM passwords WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + passwordColumns + ` FROM p JOIN users u ON u.id = p.user_id`

	var password model.Password
	if err := r.db.QueryRowxContext(ctx, query, id, ownerID).StructScan(&password); err != nil {
		return nil, translate(err)
	}

	return &password, nil
}
