package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS translation (
  id SERIAL PRIMARY KEY,
  original_text TEXT NOT NULL,
  translated_text TEXT NOT NULL,
  source_lang TEXT NOT NULL,
  target_lang TEXT NOT NULL,
  total_time DOUBLE PRECISION NOT NULL,
  input_prep_time DOUBLE PRECISION NOT NULL,
  translation_time DOUBLE PRECISION NOT NULL,
  decoding_time DOUBLE PRECISION NOT NULL
);

ALTER TABLE translation ADD COLUMN IF NOT EXISTS model_load_time DOUBLE PRECISION NOT NULL DEFAULT 0;
`

// OpenPostgres creates the process-wide connection pool and applies the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func MigratePostgres(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate postgres schema: %w", err)
	}
	return nil
}
