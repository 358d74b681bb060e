package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-index-exporter/internal/config"
	"go-index-exporter/internal/model"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "exports.db")))
}

func testConfig() *config.Config {
	return &config.Config{
		Host:      "localhost",
		Port:      9200,
		Directory: "exports",
		PageSize:  100,
		ScrollTTL: "1m",
		Workers:   2,
	}
}

func TestRunLifecycle(t *testing.T) {
	initTestDB(t)

	require.NoError(t, SaveRun("run-1", testConfig()))
	require.NoError(t, UpdateRunStatus("run-1", "running"))
	require.NoError(t, UpdateRunStatus("run-1", "completed"))

	run, err := GetRun("run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", run["id"])
	assert.Equal(t, "completed", run["status"])

	cfg, ok := run["config"].(config.Config)
	require.True(t, ok)
	assert.Equal(t, "localhost", cfg.Host)

	runs, err := ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
}

func TestGetRunNotFound(t *testing.T) {
	initTestDB(t)

	_, err := GetRun("nope")
	require.Error(t, err)
}

func TestIndexResults(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveRun("run-1", testConfig()))

	require.NoError(t, SaveIndexResult("run-1", model.IndexExportResult{
		Index:       "users",
		Status:      model.StatusExported,
		DocCount:    42,
		Artifact:    "exports/localhost/users_100.json",
		CompletedAt: time.Now().UTC(),
	}))
	require.NoError(t, SaveIndexResult("run-1", model.IndexExportResult{
		Index:       "orders",
		Status:      model.StatusFailed,
		Kind:        model.KindCursorExpired,
		Error:       "scroll cursor expired",
		CompletedAt: time.Now().UTC(),
	}))

	results, err := GetIndexResults("run-1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	byIndex := map[string]model.IndexExportResult{}
	for _, res := range results {
		byIndex[res.Index] = res
	}
	assert.Equal(t, 42, byIndex["users"].DocCount)
	assert.Equal(t, model.KindCursorExpired, byIndex["orders"].Kind)
}

func TestRunErrors(t *testing.T) {
	initTestDB(t)
	require.NoError(t, SaveRun("run-1", testConfig()))

	require.NoError(t, SaveRunError("run-1", errors.New("store unavailable: connection refused")))
	require.NoError(t, SaveRunError("run-1", nil)) // nil errors are ignored

	errs, err := GetRunErrors("run-1")
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0]["error"], "connection refused")
}
