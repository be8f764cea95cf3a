package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	BigQuery BigQueryConfig `yaml:"bigquery"`
	Archive  ArchiveConfig  `yaml:"archive"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// BigQueryConfig locates the messages table.
type BigQueryConfig struct {
	ProjectID string `yaml:"project_id"`
	Dataset   string `yaml:"dataset"`
	Table     string `yaml:"table"`
}

// ArchiveConfig configures the raw-message audit archive. An empty bucket
// disables archiving.
type ArchiveConfig struct {
	Bucket string `yaml:"bucket"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		BigQuery: BigQueryConfig{
			Dataset: "momo",
			Table:   "messages",
		},
	}
}

// Load reads configuration from an optional YAML file, then applies
// environment overrides. Pass an empty path to use defaults + environment
// only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("BQ_PROJECT_ID"); v != "" {
		c.BigQuery.ProjectID = v
	}
	if v := os.Getenv("BQ_DATASET"); v != "" {
		c.BigQuery.Dataset = v
	}
	if v := os.Getenv("BQ_TABLE"); v != "" {
		c.BigQuery.Table = v
	}
	if v := os.Getenv("GCS_BUCKET"); v != "" {
		c.Archive.Bucket = v
	}
}

// ValidateForBigQuery checks the fields required to run against BigQuery.
// The in-memory store mode does not need them.
func (c *Config) ValidateForBigQuery() error {
	if c.BigQuery.ProjectID == "" {
		return fmt.Errorf("config: bigquery project_id is required (set BQ_PROJECT_ID)")
	}
	if c.BigQuery.Dataset == "" || c.BigQuery.Table == "" {
		return fmt.Errorf("config: bigquery dataset and table are required")
	}
	return nil
}
