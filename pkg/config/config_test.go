package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_MatchCLIFlagDefaults(t *testing.T) {
	d := Defaults()
	if d.Dedup != 256 {
		t.Errorf("Dedup = %d, want 256", d.Dedup)
	}
	if d.Blur != 1 {
		t.Errorf("Blur = %v, want 1", d.Blur)
	}
	if d.Sensitivity != 63 {
		t.Errorf("Sensitivity = %d, want 63", d.Sensitivity)
	}
	if d.Width != 512 {
		t.Errorf("Width = %d, want 512", d.Width)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	configFilePath = func() string { return filepath.Join(dir, "does-not-exist.json") }
	defer func() { configFilePath = defaultConfigFilePath }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Defaults() {
		t.Errorf("Load() = %+v, want Defaults() %+v", cfg, Defaults())
	}
}

func TestLoad_PartialOverrideLeavesOtherFieldsDefaulted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"dedup": 64}`), 0644); err != nil {
		t.Fatal(err)
	}
	configFilePath = func() string { return path }
	defer func() { configFilePath = defaultConfigFilePath }()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Dedup != 64 {
		t.Errorf("Dedup = %d, want 64", cfg.Dedup)
	}
	if cfg.Width != Defaults().Width {
		t.Errorf("Width = %d, want untouched default %d", cfg.Width, Defaults().Width)
	}
}

func TestLoad_RejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"log_level": "verbose"}`), 0644); err != nil {
		t.Fatal(err)
	}
	configFilePath = func() string { return path }
	defer func() { configFilePath = defaultConfigFilePath }()

	if _, err := Load(); err == nil {
		t.Error("Load() error = nil, want error for invalid log level")
	}
}

func TestValidate_RejectsNonPowerOfTwoWidth(t *testing.T) {
	cfg := Defaults()
	cfg.Width = 500
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() error = nil, want error for non-power-of-two width")
	}
}
