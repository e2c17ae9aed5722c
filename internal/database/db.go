package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"tariffscope/pkg/models"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		kwh REAL NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(timestamp)
	);
	CREATE INDEX IF NOT EXISTS idx_readings_timestamp ON readings(timestamp);

	CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		source_file TEXT,
		account_number TEXT,
		total_kwh REAL NOT NULL,
		tou_cost REAL NOT NULL,
		flat_cost REAL NOT NULL,
		savings REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON analysis_runs(created_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// InsertReading inserts an interval reading, ignoring duplicate timestamps
func (db *DB) InsertReading(r *models.Reading) error {
	query := `
	INSERT OR IGNORE INTO readings (timestamp, kwh, created_at)
	VALUES (?, ?, ?)
	`

	tsStr := r.Timestamp.Format("2006-01-02 15:04:05")
	createdAt := time.Now().UTC().Format(time.RFC3339)

	_, err := db.conn.Exec(query, tsStr, r.KWh, createdAt)
	if err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}

	return nil
}

// ListReadings retrieves all stored readings ordered by timestamp
func (db *DB) ListReadings() ([]models.Reading, error) {
	query := `
	SELECT id, timestamp, kwh
	FROM readings
	ORDER BY timestamp
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var results []models.Reading
	for rows.Next() {
		var r models.Reading
		var tsStr string

		if err := rows.Scan(&r.ID, &tsStr, &r.KWh); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Timestamp, err = time.Parse("2006-01-02 15:04:05", tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}

		results = append(results, r)
	}

	return results, rows.Err()
}

// InsertRun records a completed analysis run
func (db *DB) InsertRun(run *models.AnalysisRun) error {
	query := `
	INSERT INTO analysis_runs (id, created_at, source_file, account_number, total_kwh, tou_cost, flat_cost, savings)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := run.CreatedAt.UTC().Format(time.RFC3339)

	_, err := db.conn.Exec(query, run.ID, createdAt, run.SourceFile, run.AccountNumber,
		run.TotalKWh, run.TOUCost, run.FlatCost, run.Savings)
	if err != nil {
		return fmt.Errorf("inserting analysis run: %w", err)
	}

	return nil
}

// ListRuns retrieves stored analysis runs, newest first
func (db *DB) ListRuns() ([]models.AnalysisRun, error) {
	query := `
	SELECT id, created_at, source_file, account_number, total_kwh, tou_cost, flat_cost, savings
	FROM analysis_runs
	ORDER BY created_at DESC
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying analysis runs: %w", err)
	}
	defer rows.Close()

	var results []models.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, run)
	}

	return results, rows.Err()
}

// LatestRun returns the most recent analysis run, or nil if none exist
func (db *DB) LatestRun() (*models.AnalysisRun, error) {
	query := `
	SELECT id, created_at, source_file, account_number, total_kwh, tou_cost, flat_cost, savings
	FROM analysis_runs
	ORDER BY created_at DESC
	LIMIT 1
	`

	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("querying latest run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	run, err := scanRun(rows)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func scanRun(rows *sql.Rows) (models.AnalysisRun, error) {
	var run models.AnalysisRun
	var createdStr string
	var sourceFile, accountNumber sql.NullString

	if err := rows.Scan(&run.ID, &createdStr, &sourceFile, &accountNumber,
		&run.TotalKWh, &run.TOUCost, &run.FlatCost, &run.Savings); err != nil {
		return run, fmt.Errorf("scanning run: %w", err)
	}

	createdAt, err := time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return run, fmt.Errorf("parsing created_at: %w", err)
	}
	run.CreatedAt = createdAt
	run.SourceFile = sourceFile.String
	run.AccountNumber = accountNumber.String

	return run, nil
}
