// Package db provides SQLite database management for pipeline run history.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Run history table
-- One row per completed analyze run
CREATE TABLE IF NOT EXISTS run_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,       -- UUID assigned at run start
    input_file TEXT NOT NULL,          -- Path to the sales data file
    lines_read INTEGER NOT NULL,       -- Raw data lines read
    parsed INTEGER NOT NULL,           -- Records the parser accepted
    invalid INTEGER NOT NULL,          -- Records failing a validity predicate
    valid INTEGER NOT NULL,            -- Records after validation and filtering
    total_revenue TEXT NOT NULL,       -- Decimal string, filtered set
    enriched_matched INTEGER NOT NULL, -- Transactions matched in the catalog
    report_file TEXT NOT NULL,         -- Path to the generated report
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_run_history_started
    ON run_history(started_at);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
