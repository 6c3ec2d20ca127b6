package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RunRecord represents one completed analyze run.
type RunRecord struct {
	ID              int64
	RunID           string
	InputFile       string
	LinesRead       int
	Parsed          int
	Invalid         int
	Valid           int
	TotalRevenue    decimal.Decimal
	EnrichedMatched int
	ReportFile      string
	StartedAt       time.Time
	FinishedAt      time.Time
}

// RunHistory manages run history operations.
type RunHistory struct {
	conn *Connection
}

// NewRunHistory creates a new RunHistory instance.
func NewRunHistory(conn *Connection) *RunHistory {
	return &RunHistory{conn: conn}
}

// RecordRun records a completed pipeline run.
func (h *RunHistory) RecordRun(record RunRecord) error {
	query := `
		INSERT INTO run_history (
			run_id, input_file, lines_read, parsed, invalid, valid,
			total_revenue, enriched_matched, report_file, started_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.RunID,
		record.InputFile,
		record.LinesRead,
		record.Parsed,
		record.Invalid,
		record.Valid,
		record.TotalRevenue.String(),
		record.EnrichedMatched,
		record.ReportFile,
		record.StartedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// ListRuns retrieves the most recent runs, newest first.
func (h *RunHistory) ListRuns(limit int) ([]RunRecord, error) {
	query := `
		SELECT id, run_id, input_file, lines_read, parsed, invalid, valid,
		       total_revenue, enriched_matched, report_file, started_at, finished_at
		FROM run_history
		ORDER BY started_at DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var revenue string

		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&record.InputFile,
			&record.LinesRead,
			&record.Parsed,
			&record.Invalid,
			&record.Valid,
			&revenue,
			&record.EnrichedMatched,
			&record.ReportFile,
			&record.StartedAt,
			&record.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w", err)
		}

		record.TotalRevenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored revenue %q: %w", revenue, err)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

// Stats represents run history statistics.
type Stats struct {
	TotalRuns        int
	TotalRecordsRead int
	TotalInvalid     int
	LastRun          sql.NullString
}

// GetStats retrieves run history statistics.
func (h *RunHistory) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*) FROM run_history`).Scan(&stats.TotalRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get run count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COALESCE(SUM(lines_read), 0) FROM run_history`).Scan(&stats.TotalRecordsRead)
	if err != nil {
		return nil, fmt.Errorf("failed to get records read: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COALESCE(SUM(invalid), 0) FROM run_history`).Scan(&stats.TotalInvalid)
	if err != nil {
		return nil, fmt.Errorf("failed to get invalid count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(started_at) FROM run_history`).Scan(&stats.LastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last run time: %w", err)
	}

	return &stats, nil
}
