package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	"polyglot/backend/pkg/logger"
)

const (
	DefaultWaitAttempts = 5
	DefaultWaitDelay    = 5 * time.Second
)

var ErrDatabaseUnavailable = errors.New("database unavailable")

// DialFunc opens and immediately closes one connection to the store.
type DialFunc func(ctx context.Context, databaseURL string) error

type WaitConfig struct {
	Attempts int
	Delay    time.Duration
	Dial     DialFunc
}

// WaitForDatabase blocks until the store accepts a connection or the attempt
// budget is spent. It is meant to run once, before a process starts serving.
func WaitForDatabase(ctx context.Context, databaseURL string, cfg WaitConfig) error {
	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = DefaultWaitAttempts
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = DefaultWaitDelay
	}
	dial := cfg.Dial
	if dial == nil {
		dial = Ping
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = dial(ctx, databaseURL)
		if lastErr == nil {
			logger.Info("database is ready", "module", "db", "action", "wait", "result", "ok", "attempt", attempt)
			return nil
		}

		args := []any{"module", "db", "action", "wait", "result", "retry", "attempt", attempt, "max_attempts", attempts, "delay", delay, "error", lastErr}
		var pgErr *pgconn.PgError
		if errors.As(lastErr, &pgErr) {
			args = append(args, "pg_code", pgErr.Code, "starting_up", startingUp(pgErr.Code))
		}
		logger.Warn("database not ready", args...)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, ctx.Err())
		case <-time.After(delay):
		}
	}

	logger.Error("max retries reached, could not connect to the database", "module", "db", "action", "wait", "result", "failed", "attempts", attempts)
	return fmt.Errorf("%w after %d attempts: %v", ErrDatabaseUnavailable, attempts, lastErr)
}

// startingUp reports codes a server emits while it is still booting.
func startingUp(code string) bool {
	return code == pgerrcode.CannotConnectNow || pgerrcode.IsConnectionException(code)
}

// Ping opens and closes a single connection for the driver selected by databaseURL.
func Ping(ctx context.Context, databaseURL string) error {
	driver, target, err := ParseURL(databaseURL)
	if err != nil {
		return err
	}

	switch driver {
	case DriverPostgres:
		conn, err := pgx.Connect(ctx, target)
		if err != nil {
			return err
		}
		return conn.Close(ctx)
	default:
		if err := ensureDir(target); err != nil {
			return err
		}
		database, err := sql.Open("sqlite", BuildDSN(target))
		if err != nil {
			return err
		}
		defer database.Close()
		return database.PingContext(ctx)
	}
}
