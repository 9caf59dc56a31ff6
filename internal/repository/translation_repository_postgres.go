package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"polyglot/backend/internal/model"
)

type postgresTranslationRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTranslationRepository creates a repository over a shared pgx pool.
func NewPostgresTranslationRepository(pool *pgxpool.Pool) TranslationRepository {
	return &postgresTranslationRepository{pool: pool}
}

func (r *postgresTranslationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return model.Translation{}, fmt.Errorf("begin tx: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `
		INSERT INTO translation (`+translationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, `+translationColumns,
		translationArgs(t)...,
	)
	created, err := scanTranslation(row)
	if err != nil {
		return model.Translation{}, fmt.Errorf("insert translation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Translation{}, fmt.Errorf("commit translation: %w", err)
	}
	return created, nil
}

func (r *postgresTranslationRepository) List(ctx context.Context) ([]model.Translation, error) {
	rows, err := r.pool.Query(ctx, selectTranslations)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	translations := make([]model.Translation, 0)
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, err
		}
		translations = append(translations, t)
	}
	return translations, rows.Err()
}

func (r *postgresTranslationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM translation`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
