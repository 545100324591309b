// Command migrate creates or updates the sqlite schema without starting
// the API server, for provisioning and backup-restore flows.
package main

import (
	"flag"
	"os"

	"github.com/dvloznov/finance-vault/internal/logger"
	"github.com/dvloznov/finance-vault/internal/record"
)

func main() {
	var (
		dbPath = flag.String("db", envOr("FV_DB_PATH", "vault.db"), "path to the sqlite database")
		level  = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	log := logger.New(*level, true)

	db, err := record.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dbPath).Msg("Failed to open database")
	}

	if err := record.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Str("path", *dbPath).Msg("Schema is up to date")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
