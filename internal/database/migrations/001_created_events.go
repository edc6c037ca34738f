package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 1,
		Name:    "created_events",
		Up:      createdEvents,
	})
}

func createdEvents(db *sql.DB) error {
	statements := []string{
		// Events created through plancast, one row per backend event
		`CREATE TABLE IF NOT EXISTS created_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			backend TEXT NOT NULL,
			event_id TEXT NOT NULL,
			title TEXT NOT NULL,
			title_key TEXT NOT NULL,
			start_utc TEXT NOT NULL,
			end_utc TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(backend, event_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_created_events_lookup ON created_events(backend, title_key, start_utc)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
