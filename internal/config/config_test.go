package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadGroupedConfig(t *testing.T) {
	path := writeConfig(t, `
elastic:
  host: localhost
  port: 9200
dump:
  directory: exports
  size: 500
  scroll: 1m
  workers: 4
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "exports", cfg.Directory)
	assert.Equal(t, 500, cfg.PageSize)
	assert.Equal(t, "1m", cfg.ScrollTTL)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "localhost:9200", cfg.Addr())
}

func TestLoadDuplicateKeyLastGroupWins(t *testing.T) {
	// "host" appears in two groups; the later group (by name order) wins.
	path := writeConfig(t, `
alpha:
  host: first.example.com
  port: 9200
  directory: exports
  size: 10
  scroll: 1m
  workers: 2
zeta:
  host: last.example.com
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "last.example.com", cfg.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, "::::not yaml")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing host",
			yaml: `
elastic:
  port: 9200
dump:
  directory: exports
  size: 10
  scroll: 1m
  workers: 1
`,
			wantErr: "host",
		},
		{
			name: "zero workers",
			yaml: `
elastic:
  host: localhost
  port: 9200
dump:
  directory: exports
  size: 10
  scroll: 1m
  workers: 0
`,
			wantErr: "workers",
		},
		{
			name: "zero page size",
			yaml: `
elastic:
  host: localhost
  port: 9200
dump:
  directory: exports
  size: 0
  scroll: 1m
  workers: 1
`,
			wantErr: "size",
		},
		{
			name: "bad scroll duration",
			yaml: `
elastic:
  host: localhost
  port: 9200
dump:
  directory: exports
  size: 10
  scroll: sometimes
  workers: 1
`,
			wantErr: "scroll",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.yaml)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
