package config

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where Load looks when no path is given
const DefaultPath = "config.yaml"

// Config holds the resolved exporter settings. Built once at startup and
// shared read-only by every worker.
type Config struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Directory string `json:"directory"`
	PageSize  int    `json:"size"`
	ScrollTTL string `json:"scroll"`
	Workers   int    `json:"workers"`
}

// Load reads a grouped YAML settings file and resolves it into a Config.
//
// The file is organized in named groups (e.g. "elastic:", "dump:") purely for
// the operator's benefit; groups are flattened into a single option table
// before lookup. A key appearing in more than one group resolves to the value
// of the last group (by name order), and a warning is printed when that happens.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var groups map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("invalid config format in %s: %w", path, err)
	}

	options := flatten(groups)

	cfg := &Config{
		Host:      stringOption(options, "host"),
		Port:      intOption(options, "port"),
		Directory: stringOption(options, "directory"),
		PageSize:  intOption(options, "size"),
		ScrollTTL: stringOption(options, "scroll"),
		Workers:   intOption(options, "workers"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the store endpoint as host:port
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("config: missing option %q", "host")
	}
	if c.Port <= 0 {
		return fmt.Errorf("config: option %q must be a positive integer", "port")
	}
	if c.Directory == "" {
		return fmt.Errorf("config: missing option %q", "directory")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: option %q must be ≥ 1, got %d", "size", c.PageSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("config: option %q must be ≥ 1, got %d", "workers", c.Workers)
	}
	if c.ScrollTTL == "" {
		return fmt.Errorf("config: missing option %q", "scroll")
	}
	if _, err := time.ParseDuration(c.ScrollTTL); err != nil {
		return fmt.Errorf("config: option %q is not a valid duration: %w", "scroll", err)
	}
	return nil
}

// flatten merges all groups into one option table, last group wins.
// Groups are walked in sorted name order so the override is deterministic.
func flatten(groups map[string]map[string]interface{}) map[string]interface{} {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	options := make(map[string]interface{})
	for _, name := range names {
		for key, value := range groups[name] {
			if _, dup := options[key]; dup {
				fmt.Printf("⚠️ Config: option %q defined in multiple groups, group %q wins\n", key, name)
			}
			options[key] = value
		}
	}
	return options
}

func stringOption(options map[string]interface{}, key string) string {
	switch v := options[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intOption(options map[string]interface{}, key string) int {
	switch v := options[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
