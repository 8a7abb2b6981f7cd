package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upCreatePasswordsTable, downCreatePasswordsTable)
}

func upCreatePasswordsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE passwords (
	  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	  website TEXT NOT NULL,
	  username TEXT NOT NULL,
	  value TEXT NOT NULL,
	  logo_path TEXT,
	  user_id UUID NOT NULL REFERENCES users(id),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	CREATE INDEX idx_passwords_user_id ON passwords(user_id);
	`)
	return err
}

func downCreatePasswordsTable(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS passwords;`)
	return err
}
