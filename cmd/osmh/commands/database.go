package commands

import (
	"database/sql"

	"github.com/osmworks/osmh/config"
	"github.com/osmworks/osmh/db"
	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/logger"
)

// openDatabase opens and migrates the snapshot database. If dbPath is
// empty the configured path is used.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.Database.Path
		if dbPath == "" {
			dbPath = "osmh.db"
		}
	}

	database, err := db.OpenWithMigrations(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}
	return database, nil
}
