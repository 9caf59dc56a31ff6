package db

import (
	"database/sql"
	"fmt"
)

// Base schema. id is assigned by the store on insert.
const baseSchema = `
CREATE TABLE IF NOT EXISTS translation (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  original_text TEXT NOT NULL,
  translated_text TEXT NOT NULL,
  source_lang TEXT NOT NULL,
  target_lang TEXT NOT NULL,
  total_time REAL NOT NULL,
  input_prep_time REAL NOT NULL,
  translation_time REAL NOT NULL,
  decoding_time REAL NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: model_load_time was added after the first schema shipped
	exists, err := hasColumn(db, "translation", "model_load_time")
	if err != nil {
		return fmt.Errorf("check model_load_time column: %w", err)
	}
	if !exists {
		if _, err := db.Exec(`ALTER TABLE translation ADD COLUMN model_load_time REAL NOT NULL DEFAULT 0`); err != nil {
			return fmt.Errorf("add model_load_time column: %w", err)
		}
	}

	return nil
}

func hasColumn(db *sql.DB, table string, column string) (bool, error) {
	var count int
	if err := db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table),
		column,
	).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
