package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultHasSaneFallbacks(t *testing.T) {
	cfg := Default()
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default logging level info, got %q", cfg.Logging.Level)
	}
	if cfg.Ingest.HTPThreshold != 50 {
		t.Errorf("expected default HTP threshold 50, got %d", cfg.Ingest.HTPThreshold)
	}
	if cfg.Ingest.KeepNoref {
		t.Errorf("expected keep_noref off by default")
	}
}

func TestLoadLayersYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := "ingest:\n  htp_threshold: 7\n  keep_noref: true\nsnapshot:\n  path: custom.db\norganisms:\n  - 9606\n  - 10090\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	cfg, err := Load("", path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ingest.HTPThreshold != 7 {
		t.Errorf("expected htp_threshold 7, got %d", cfg.Ingest.HTPThreshold)
	}
	if !cfg.Ingest.KeepNoref {
		t.Errorf("expected keep_noref true")
	}
	if cfg.Snapshot.Path != "custom.db" {
		t.Errorf("expected snapshot path custom.db, got %q", cfg.Snapshot.Path)
	}
	if len(cfg.Organisms) != 2 || cfg.Organisms[0] != 9606 {
		t.Errorf("expected organisms [9606 10090], got %v", cfg.Organisms)
	}
	// Logging level wasn't set in the file, so the default should survive.
	if cfg.Logging.Level != "info" {
		t.Errorf("expected unset logging level to keep default, got %q", cfg.Logging.Level)
	}
}

func TestLoadToleratesMissingFiles(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("expected missing env/config files to be tolerated, got %v", err)
	}
	if cfg.Ingest.HTPThreshold != Default().Ingest.HTPThreshold {
		t.Errorf("expected defaults to survive when no files are present")
	}
}
