package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"mercado-service/internal/model"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) (*model.Item, error)
	// FindAll lists every item when ownerID is nil.
	FindAll(ctx context.Context, ownerID *uuid.UUID) ([]model.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error)
	FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error)
	UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.ItemPatch) (*model.Item, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error)
}

const itemColumns = `i.id, i.title, i.description, i.photo_path, i.price, i.user_id, i.created_at, i.updated_at, ` + ownerColumns

type postgresItemRepository struct {
	db *sqlx.DB
}

func NewPostgresItemRepository(db *sqlx.DB) ItemRepository {
	return &postgresItemRepository{db: db}
}

func (r *postgresItemRepository) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	query := `
		WITH i AS (
			INSERT INTO items (title, description, photo_path, price, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + itemColumns + ` FROM i JOIN users u ON u.id = i.user_id`

	var created model.Item
	err := r.db.QueryRowxContext(ctx, query, item.Title, item.Description, item.PhotoPath, item.Price, item.UserID).StructScan(&created)
	if err != nil {
		return nil, translate(err)
	}

	return &created, nil
}

func (r *postgresItemRepository) FindAll(ctx context.Context, ownerID *uuid.UUID) ([]model.Item, error) {
	items := []model.Item{}
	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.user_id`

	var err error
	if ownerID == nil {
		err = r.db.SelectContext(ctx, &items, query+` ORDER BY i.created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &items, query+` WHERE i.user_id = $1 ORDER BY i.created_at DESC`, *ownerID)
	}
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *postgresItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var item model.Item
	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.user_id WHERE i.id = $1`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, translate(err)
	}

	return &item, nil
}

func (r *postgresItemRepository) FindOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	var item model.Item
	query := `SELECT ` + itemColumns + ` FROM items i JOIN users u ON u.id = i.user_id WHERE i.id = $1 AND i.user_id = $2`
	if err := r.db.GetContext(ctx, &item, query, id, ownerID); err != nil {
		return nil, translate(err)
	}

	return &item, nil
}

func (r *postgresItemRepository) UpdateOwned(ctx context.Context, id, ownerID uuid.UUID, patch model.ItemPatch) (*model.Item, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	set := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.PhotoPath != nil {
		set("photo_path", *patch.PhotoPath)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	setClauses = append(setClauses, "updated_at = now()")

	query := fmt.Sprintf(`
		WITH i AS (
			UPDATE items SET %s WHERE id = $%d AND user_id = $%d
			RETURNING *
		)
		SELECT %s FROM i JOIN users u ON u.id = i.user_id`,
		strings.Join(setClauses, ", "), argID, argID+1, itemColumns)
	args = append(args, id, ownerID)

	var item model.Item
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&item); err != nil {
		return nil, translate(err)
	}

	return &item, nil
}

func (r *postgresItemRepository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Item, error) {
	query := `
		WITH i AS (
			DELETE FROM items WHERE id = $1 AND user_id = $2
			RETURNING *
		)
		SELECT ` + itemColumns + ` FROM i JOIN users u ON u.id = i.user_id`

	var item model.Item
	if err := r.db.QueryRowxContext(ctx, query, id, ownerID).StructScan(&item); err != nil {
		return nil, translate(err)
	}

	return &item, nil
}
