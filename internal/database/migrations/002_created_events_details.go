package migrations

import (
	"database/sql"
)

func init() {
	Register(Migration{
		Version: 2,
		Name:    "created_events_details",
		Up:      createdEventsDetails,
	})
}

func createdEventsDetails(db *sql.DB) error {
	if err := AddColumnIfNotExists(db, "created_events", "location", "TEXT DEFAULT ''"); err != nil {
		return err
	}
	return AddColumnIfNotExists(db, "created_events", "request_text", "TEXT DEFAULT ''")
}
