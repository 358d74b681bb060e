package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go-index-exporter/internal/model"
	"go-index-exporter/pkg/utils"
)

// ErrWriteFailure marks an artifact that could not be durably written.
var ErrWriteFailure = errors.New("artifact write failed")

// WriteArtifact serializes the collected documents of one index to
// <dir>/<index>_<ts>.json as a JSON array. The file is written to a temp path
// in the same directory and renamed into place, so a failed write never
// leaves a file claiming to be a complete export. An empty document set still
// produces an artifact containing [].
func WriteArtifact(docs []model.Document, dir, index string, ts int64) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating output directory %s: %v", ErrWriteFailure, dir, err)
	}

	if docs == nil {
		docs = []model.Document{}
	}

	tmp, err := os.CreateTemp(dir, "."+index+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: creating temp file in %s: %v", ErrWriteFailure, dir, err)
	}
	tmpPath := tmp.Name()

	if err := json.NewEncoder(tmp).Encode(docs); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: encoding %s: %v", ErrWriteFailure, index, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: flushing %s: %v", ErrWriteFailure, index, err)
	}

	path := filepath.Join(dir, utils.ArtifactName(index, ts))
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: renaming %s into place: %v", ErrWriteFailure, index, err)
	}
	return path, nil
}
