package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateItemsTable, downCreateItemsTable)
}

func upCreateItemsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE items (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  title VARCHAR(70) NOT NULL CHECK (char_length(title) >= 2),
	  description TEXT,
	  photo_path TEXT,
	  price NUMERIC(12, 2) NOT NULL CHECK (price <> 'NaN'::numeric),
	  user_id UUID NOT NULL REFERENCES users(id),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_items_user_id ON items(user_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateItemsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS items;`)
	return err
}
