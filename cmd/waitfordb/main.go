// Command waitfordb blocks until DATABASE_URL accepts connections, so a
// container entrypoint can chain it in front of the application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"polyglot/backend/internal/config"
	"polyglot/backend/internal/db"
	"polyglot/backend/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger.Init(logger.ParseLevel(os.Getenv("POLYGLOT_LOG_LEVEL")))

	databaseURL := os.Getenv(config.DatabaseURLEnv)
	if databaseURL == "" {
		fmt.Println("DATABASE_URL environment variable is not set.")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := db.WaitForDatabase(ctx, databaseURL, db.WaitConfig{
		Attempts: db.DefaultWaitAttempts,
		Delay:    db.DefaultWaitDelay,
	})
	if err != nil {
		fmt.Println("Exiting due to database connection failure.")
		return 1
	}

	fmt.Println("Database is ready!")
	fmt.Println("Starting the application...")
	return 0
}
