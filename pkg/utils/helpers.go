package utils

import (
	"fmt"
	"strings"
	"time"
)

// SanitizeHost turns a store host into a directory-safe name so exports of
// different endpoints land in different subdirectories.
func SanitizeHost(host string) string {
	replacer := strings.NewReplacer(
		"://", "_",
		":", "_",
		"/", "_",
		"\\", "_",
	)
	sanitized := replacer.Replace(strings.TrimSpace(host))
	if sanitized == "" {
		return "unknown-host"
	}
	return sanitized
}

// ArtifactName derives the output file name for one index export.
// Timestamp-based naming keeps repeated runs from overwriting each other.
func ArtifactName(index string, ts int64) string {
	return fmt.Sprintf("%s_%d.json", index, ts)
}

// ParseDuration safely parses a duration string like "5m"
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}
