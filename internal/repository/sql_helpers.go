package repository

import (
	"context"
	"database/sql"

	"polyglot/backend/internal/model"
)

// translationColumns lists every persisted column except id, in insert order.
const translationColumns = `original_text, translated_text, source_lang, target_lang,
	total_time, input_prep_time, translation_time, decoding_time, model_load_time`

const selectTranslations = `SELECT id, ` + translationColumns + ` FROM translation ORDER BY id`

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// rowScanner is satisfied by *sql.Row, *sql.Rows, pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTranslation(row rowScanner) (model.Translation, error) {
	var t model.Translation
	err := row.Scan(
		&t.ID,
		&t.OriginalText,
		&t.TranslatedText,
		&t.SourceLang,
		&t.TargetLang,
		&t.TotalTime,
		&t.InputPrepTime,
		&t.TranslationTime,
		&t.DecodingTime,
		&t.ModelLoadTime,
	)
	return t, err
}

func translationArgs(t model.Translation) []interface{} {
	return []interface{}{
		t.OriginalText,
		t.TranslatedText,
		t.SourceLang,
		t.TargetLang,
		t.TotalTime,
		t.InputPrepTime,
		t.TranslationTime,
		t.DecodingTime,
		t.ModelLoadTime,
	}
}
