//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"polyglot/backend/internal/model"
)

// TranslationRepository persists translation records. Implementations open a
// unit of work per call; nothing is held across calls.
type TranslationRepository interface {
	// Create inserts t in its own transaction and returns it with the
	// store-assigned id. Any id already set on t is ignored.
	Create(ctx context.Context, t model.Translation) (model.Translation, error)
	List(ctx context.Context) ([]model.Translation, error)
	Count(ctx context.Context) (int, error)
}

type translationRepository struct {
	db *sql.DB
}

// NewTranslationRepository creates an SQLite-backed repository.
func NewTranslationRepository(db *sql.DB) TranslationRepository {
	return &translationRepository{db: db}
}

func (r *translationRepository) Create(ctx context.Context, t model.Translation) (model.Translation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Translation{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created, err := insertTranslation(ctx, tx, t)
	if err != nil {
		return model.Translation{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Translation{}, fmt.Errorf("commit translation: %w", err)
	}
	return created, nil
}

func insertTranslation(ctx context.Context, q dbtx, t model.Translation) (model.Translation, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO translation (`+translationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, translationArgs(t)...)
	if err != nil {
		return model.Translation{}, fmt.Errorf("insert translation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Translation{}, fmt.Errorf("read translation id: %w", err)
	}

	// refresh from the row as stored
	row := q.QueryRowContext(ctx, `SELECT id, `+translationColumns+` FROM translation WHERE id = ?`, id)
	created, err := scanTranslation(row)
	if err != nil {
		return model.Translation{}, fmt.Errorf("refresh translation: %w", err)
	}
	return created, nil
}

func (r *translationRepository) List(ctx context.Context) ([]model.Translation, error) {
	rows, err := r.db.QueryContext(ctx, selectTranslations)
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

func (r *translationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translation`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
