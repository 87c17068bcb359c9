// Package pixdb persists frames, clusters and manual classification
// labels in a local sqlite database. The schema is managed with embedded
// golang-migrate migrations.
package pixdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle holding frame and cluster records.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// applies any pending schema migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Local tool, single writer. WAL keeps readers (e.g. a concurrent
	// export) from blocking the import path.
	if _, err := sqlDB.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}
