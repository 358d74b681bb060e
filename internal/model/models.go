package model

import (
	"encoding/json"
	"time"
)

// Document is a single hit exactly as the store returned it
type Document struct {
	Index  string          `json:"_index"`
	Type   string          `json:"_type,omitempty"`
	ID     string          `json:"_id"`
	Source json.RawMessage `json:"_source"`
}

// Index export statuses
const (
	StatusExported = "exported"
	StatusFailed   = "failed"
)

// Failure kinds for a per-index outcome
const (
	KindCursorExpired = "cursor_expired"
	KindScanFailure   = "scan_failure"
	KindWriteFailure  = "write_failure"
)

// IndexExportResult is the outcome of one index export task
type IndexExportResult struct {
	Index       string    `json:"index"`
	Status      string    `json:"status"` // "exported", "failed"
	Kind        string    `json:"kind,omitempty"`
	DocCount    int       `json:"doc_count"`
	Artifact    string    `json:"artifact,omitempty"` // file path of the written artifact
	Error       string    `json:"error,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// RunSummary aggregates the outcomes of one export run
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Indices    int       `json:"indices"`
	Exported   int       `json:"exported"`
	Failed     int       `json:"failed"`
	Documents  int       `json:"documents"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
