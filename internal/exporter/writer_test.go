package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-index-exporter/internal/model"
)

func TestWriteArtifactRoundTrip(t *testing.T) {
	dir := t.TempDir()
	docs := []model.Document{
		{Index: "users", ID: "1", Source: json.RawMessage(`{"name":"ada"}`)},
		{Index: "users", ID: "2", Source: json.RawMessage(`{"name":"grace"}`)},
	}

	path, err := WriteArtifact(docs, dir, "users", 1724500000)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "users_1724500000.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed []model.Document
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.ElementsMatch(t, docs, parsed)
}

func TestWriteArtifactEmptySet(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteArtifact(nil, dir, "empty", 1724500000)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed []model.Document
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Empty(t, parsed)
	// Must be a JSON array, not null.
	assert.Equal(t, "[", string(data[0]))
}

func TestWriteArtifactDistinctTimestamps(t *testing.T) {
	dir := t.TempDir()
	docs := []model.Document{{Index: "a", ID: "1", Source: json.RawMessage(`{}`)}}

	first, err := WriteArtifact(docs, dir, "a", 100)
	require.NoError(t, err)
	second, err := WriteArtifact(docs, dir, "a", 101)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, first)
	assert.FileExists(t, second)
}

func TestWriteArtifactLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	docs := []model.Document{{Index: "a", ID: "1", Source: json.RawMessage(`{"k":"v"}`)}}

	_, err := WriteArtifact(docs, dir, "a", 100)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a_100.json", entries[0].Name())
}

func TestWriteArtifactCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "host_9200")

	_, err := WriteArtifact(nil, dir, "a", 100)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}
