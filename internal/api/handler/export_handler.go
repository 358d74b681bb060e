package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-index-exporter/internal/config"
	"go-index-exporter/internal/exporter"
	"go-index-exporter/internal/store"
)

// ExportHandler serves the export-run API. It holds the configuration and
// store client resolved at startup; every triggered run uses them.
type ExportHandler struct {
	Cfg    *config.Config
	Client exporter.Store
}

func NewExportHandler(cfg *config.Config, client exporter.Store) *ExportHandler {
	return &ExportHandler{Cfg: cfg, Client: client}
}

// CreateExport triggers a new export run
// @Summary Trigger an export run
// @Description Start exporting every index of the configured store, one JSON artifact per index
// @Tags exports
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Export run started"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [post]
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()

	if err := store.SaveRun(runID, h.Cfg); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	// The run is a single blocking invocation; the API detaches it so the
	// request returns immediately with the run id.
	go func() {
		if _, err := exporter.Run(context.Background(), runID, h.Cfg, h.Client); err != nil {
			store.SaveRunError(runID, err)
		}
	}()

	resp := map[string]interface{}{
		"message":   "Export run started",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ListExports retrieves all export runs
// @Summary List export runs
// @Description Get all export runs with their current status
// @Tags exports
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports [get]
func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetExport retrieves one export run
// @Summary Get export run
// @Description Retrieve status and configuration of one export run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /exports/{id} [get]
func (h *ExportHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "")
	if !ok {
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetExportResults retrieves the per-index outcomes of one run
// @Summary Get per-index results
// @Description Retrieve the outcome of every index export task in one run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Per-index results"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports/{id}/results [get]
func (h *ExportHandler) GetExportResults(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/results")
	if !ok {
		return
	}

	results, err := store.GetIndexResults(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve results", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id":  runID,
		"results": results,
		"count":   len(results),
	})
}

// GetExportErrors retrieves the fatal errors of one run
// @Summary Get run errors
// @Description Retrieve fatal errors recorded for one export run
// @Tags exports
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /exports/{id}/errors [get]
func (h *ExportHandler) GetExportErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r, "/errors")
	if !ok {
		return
	}

	errs, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": errs,
		"count":  len(errs),
	})
}

// runIDFromPath extracts the run id from /api/v1/exports/{id}<suffix>.
func runIDFromPath(w http.ResponseWriter, r *http.Request, suffix string) (string, bool) {
	path := r.URL.Path
	prefix := "/api/v1/exports/"

	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}

	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" || strings.Contains(runID, "/") {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}
