package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-index-exporter/internal/config"
	"go-index-exporter/internal/model"
)

var db *sql.DB

// InitDB opens the tracking database and creates the schema. Tracking is
// optional: callers that never InitDB just lose run history, the export
// itself is unaffected.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		config TEXT,
		status TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`
	resultTable := `
	CREATE TABLE IF NOT EXISTS index_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		index_name TEXT,
		status TEXT,
		kind TEXT,
		doc_count INTEGER,
		artifact TEXT,
		error_message TEXT,
		completed_at DATETIME
	);
	`

	for _, table := range []string{runTable, errorTable, resultTable} {
		if _, err := db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun stores a new export run with its resolved configuration
func SaveRun(runID string, cfg *config.Config) error {
	if db == nil {
		return nil
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, config, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		runID, cfgJSON, "pending", now, now)
	return err
}

// UpdateRunStatus updates run status
func UpdateRunStatus(runID string, status string) error {
	if db == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunError records a fatal error for a run
func SaveRunError(runID string, err error) error {
	if db == nil || err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, err.Error(), now)
	return e
}

// SaveIndexResult records the outcome of one index export task
func SaveIndexResult(runID string, res model.IndexExportResult) error {
	if db == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO index_results (run_id, index_name, status, kind, doc_count, artifact, error_message, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, res.Index, res.Status, res.Kind, res.DocCount, res.Artifact, res.Error, res.CompletedAt)
	return err
}

// ListRuns returns all runs with basic info
func ListRuns() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches the stored configuration and status of one run
func GetRun(runID string) (map[string]interface{}, error) {
	var cfgJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT config, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&cfgJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var cfg config.Config
	if err := json.Unmarshal([]byte(cfgJSON), &cfg); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":        runID,
		"config":    cfg,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetIndexResults returns the per-index outcomes of one run
func GetIndexResults(runID string) ([]model.IndexExportResult, error) {
	rows, err := db.Query(`SELECT index_name, status, kind, doc_count, artifact, error_message, completed_at
		FROM index_results WHERE run_id = ? ORDER BY completed_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.IndexExportResult
	for rows.Next() {
		var res model.IndexExportResult
		if err := rows.Scan(&res.Index, &res.Status, &res.Kind, &res.DocCount, &res.Artifact, &res.Error, &res.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// GetRunErrors returns the fatal errors recorded for one run
func GetRunErrors(runID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]interface{}
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]interface{}{
			"error":     msg,
			"createdAt": createdAt,
		})
	}
	return errs, rows.Err()
}
