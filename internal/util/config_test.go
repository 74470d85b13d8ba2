package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Surface != "svg" || cfg.Canvas.Width != 800 || cfg.LogLevel != "info" {
		t.Errorf("defaults wrong: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	content := `log_level = "debug"
surface = "trace"

[canvas]
width = 1024
height = 768
output = "art.svg"

[record]
enabled = true
driver = "sqlite3"
dsn = ":memory:"
session = "demo"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Surface != "trace" {
		t.Errorf("top level config wrong: %+v", cfg)
	}
	if cfg.Canvas.Width != 1024 || cfg.Canvas.Output != "art.svg" {
		t.Errorf("canvas config wrong: %+v", cfg.Canvas)
	}
	if !cfg.Record.Enabled || cfg.Record.Session != "demo" {
		t.Errorf("record config wrong: %+v", cfg.Record)
	}
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}
