package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.BigQuery.Dataset != "momo" || cfg.BigQuery.Table != "messages" {
		t.Errorf("BigQuery defaults = %+v, want dataset=momo table=messages", cfg.BigQuery)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9090"
bigquery:
  project_id: my-project
  dataset: payments
  table: sms_messages
archive:
  bucket: my-sms-archive
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.BigQuery.ProjectID != "my-project" {
		t.Errorf("ProjectID = %q, want my-project", cfg.BigQuery.ProjectID)
	}
	if cfg.BigQuery.Dataset != "payments" || cfg.BigQuery.Table != "sms_messages" {
		t.Errorf("BigQuery = %+v, want dataset=payments table=sms_messages", cfg.BigQuery)
	}
	if cfg.Archive.Bucket != "my-sms-archive" {
		t.Errorf("Bucket = %q, want my-sms-archive", cfg.Archive.Bucket)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"9090\"\n"), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	t.Setenv("PORT", "7000")
	t.Setenv("BQ_PROJECT_ID", "env-project")
	t.Setenv("GCS_BUCKET", "env-bucket")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "7000" {
		t.Errorf("Port = %q, want env override 7000", cfg.Server.Port)
	}
	if cfg.BigQuery.ProjectID != "env-project" {
		t.Errorf("ProjectID = %q, want env-project", cfg.BigQuery.ProjectID)
	}
	if cfg.Archive.Bucket != "env-bucket" {
		t.Errorf("Bucket = %q, want env-bucket", cfg.Archive.Bucket)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestValidateForBigQuery(t *testing.T) {
	cfg := Default()
	if err := cfg.ValidateForBigQuery(); err == nil {
		t.Error("Expected error without project_id, got nil")
	}

	cfg.BigQuery.ProjectID = "my-project"
	if err := cfg.ValidateForBigQuery(); err != nil {
		t.Errorf("Unexpected error with full config: %v", err)
	}

	cfg.BigQuery.Table = ""
	if err := cfg.ValidateForBigQuery(); err == nil {
		t.Error("Expected error without table, got nil")
	}
}
