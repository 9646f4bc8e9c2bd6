package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rcliao/ff7r-text/internal/uasset"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ff7r-text.hcl")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "data" || cfg.OutDir != "out" {
		t.Errorf("expected data/out defaults, got %q/%q", cfg.DataDir, cfg.OutDir)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected %d workers, got %d", runtime.NumCPU(), cfg.Workers)
	}
	if diff := cmp.Diff(uasset.DefaultOptions(), cfg.ParserOptions()); diff != "" {
		t.Errorf("parser options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.hcl"), nil); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data_dir   = "${env.GAME_ROOT}/Text"
out_dir    = "csv"
regions    = ["US", "JP"]
workers    = 2
keep_going = true

log {
  level = "debug"
}

parser {
  strict_exports = false
  name_instances = false
}
`)
	cfg, err := Load(path, []string{"GAME_ROOT=/games/ff7r"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "/games/ff7r/Text" {
		t.Errorf("expected env interpolation, got %q", cfg.DataDir)
	}
	if cfg.OutDir != "csv" || cfg.Workers != 2 || !cfg.KeepGoing {
		t.Errorf("unexpected config %+v", cfg)
	}
	if diff := cmp.Diff([]string{"US", "JP"}, cfg.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("expected debug/text logging, got %+v", cfg.Log)
	}
	want := uasset.Options{StrictExports: false, Names: uasset.NameSkipNumber}
	if diff := cmp.Diff(want, cfg.ParserOptions()); diff != "" {
		t.Errorf("parser options mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
data_dir = "from-file"
db       = "file.db"
`)
	cfg, err := Load(path, []string{EnvData + "=from-env", EnvOut + "=out-env"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataDir != "from-env" || cfg.OutDir != "out-env" || cfg.DBPath != "file.db" {
		t.Errorf("unexpected precedence result %+v", cfg)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("expected default workers kept, got %d", cfg.Workers)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      `data_dir = `,
		"unknown key": `colour = "red"`,
		"workers":     `workers = 0`,
		"log format":  "log {\n  format = \"xml\"\n}\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, src), nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}
