package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.TabSize != 4 {
		t.Errorf("expected tab size 4, got %d", cfg.TabSize)
	}
	if !cfg.InsertSpaces {
		t.Error("expected insert-spaces on by default")
	}
	if cfg.ReadOnly {
		t.Error("read-only should be off by default")
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "tab-size = 8\nread-only = true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabSize != 8 {
		t.Errorf("expected tab size 8, got %d", cfg.TabSize)
	}
	if !cfg.ReadOnly {
		t.Error("expected read-only set")
	}
	// Unset fields keep their defaults.
	if !cfg.ShowLineNumbers {
		t.Error("expected default show-line-numbers")
	}
}

func TestLoadInvalidTabSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("tab-size = 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabSize != 4 {
		t.Errorf("zero tab size should fall back to default, got %d", cfg.TabSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestIndentString(t *testing.T) {
	cfg := Default()
	cfg.TabSize = 2
	if got := cfg.IndentString(); got != "  " {
		t.Errorf("expected two spaces, got %q", got)
	}
	cfg.InsertSpaces = false
	if got := cfg.IndentString(); got != "\t" {
		t.Errorf("expected tab, got %q", got)
	}
}
