package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"polyglot/backend/internal/db"
	"polyglot/backend/internal/model"

	_ "modernc.org/sqlite"
)

// PostgresURLEnv names the variable that enables Postgres-backed tests.
const PostgresURLEnv = "POLYGLOT_TEST_POSTGRES_URL"

// NewTestDB opens an in-memory SQLite database with all migrations applied.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// shared cache so every pooled connection sees the same memory database;
	// the name is unique per test to keep parallel tests apart
	dbName := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", sanitize(t.Name()), time.Now().UnixNano())
	database, err := sql.Open("sqlite", dbName)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		database.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
	})

	return database
}

// NewTestPool connects to the Postgres named by POLYGLOT_TEST_POSTGRES_URL,
// applies the schema and empties the table before and after the test.
// The test is skipped when the variable is unset.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	ctx := context.Background()
	pool, err := db.OpenPostgres(ctx, url)
	if err != nil {
		t.Fatalf("failed to open test postgres: %v", err)
	}

	clear := func() {
		if _, err := pool.Exec(ctx, `TRUNCATE translation RESTART IDENTITY`); err != nil {
			t.Fatalf("failed to clear translation table: %v", err)
		}
	}
	clear()
	t.Cleanup(func() {
		clear()
		pool.Close()
	})

	return pool
}

// SeedTranslation inserts a translation row directly and returns its id.
func SeedTranslation(t *testing.T, database *sql.DB, tr model.Translation) int64 {
	t.Helper()

	result, err := database.ExecContext(
		context.Background(),
		`INSERT INTO translation (original_text, translated_text, source_lang, target_lang, total_time, input_prep_time, translation_time, decoding_time, model_load_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.OriginalText, tr.TranslatedText, tr.SourceLang, tr.TargetLang,
		tr.TotalTime, tr.InputPrepTime, tr.TranslationTime, tr.DecodingTime, tr.ModelLoadTime,
	)
	if err != nil {
		t.Fatalf("failed to seed translation: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to read seeded id: %v", err)
	}
	return id
}

// SampleTranslation returns an unpersisted translation for the given text.
func SampleTranslation(text string) model.Translation {
	return model.Translation{
		OriginalText:    text,
		TranslatedText:  "Bonjour, comment allez-vous ?",
		SourceLang:      "eng",
		TargetLang:      "fra",
		TotalTime:       1.25,
		InputPrepTime:   0.05,
		TranslationTime: 1.1,
		DecodingTime:    0.1,
		ModelLoadTime:   0,
	}
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
