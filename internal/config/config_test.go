package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_Full(t *testing.T) {
	yaml := `
max_depth: 500
trace: true
color: never
stdlib: false
`
	cfg, err := ParseConfig([]byte(yaml), "vela.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != 500 {
		t.Errorf("max_depth = %d, want 500", cfg.MaxDepth)
	}
	if !cfg.Trace {
		t.Error("expected trace to be true")
	}
	if cfg.Color != ColorNever {
		t.Errorf("color = %q, want never", cfg.Color)
	}
	if cfg.UseStdlib() {
		t.Error("expected stdlib to be disabled")
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("trace: false\n"), "vela.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaxDepth != MaxEvalDepth {
		t.Errorf("max_depth = %d, want %d", cfg.MaxDepth, MaxEvalDepth)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color = %q, want auto", cfg.Color)
	}
	if !cfg.UseStdlib() {
		t.Error("stdlib should default to enabled")
	}
	if *Default() != *cfg {
		t.Errorf("Default() = %+v, want %+v", *Default(), *cfg)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"negative depth", "max_depth: -1\n", "max_depth"},
		{"bad color", "color: sometimes\n", "color"},
		{"not yaml", "max_depth: [\n", "parsing"},
		{"wrong type", "trace: maybe\n", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "vela.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadAndFindConfig(t *testing.T) {
	dir := t.TempDir()
	if path, err := FindConfig(dir); err != nil || path != "" {
		t.Fatalf("FindConfig on empty dir = %q, %v", path, err)
	}

	file := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(file, []byte("max_depth: 42\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, err := FindConfig(dir)
	if err != nil || path != file {
		t.Fatalf("FindConfig = %q, %v, want %q", path, err, file)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxDepth != 42 {
		t.Errorf("max_depth = %d, want 42", cfg.MaxDepth)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
