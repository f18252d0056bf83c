package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmptyConfig_Fallbacks(t *testing.T) {
	cfg := Empty()

	if got := cfg.GetInputPath(); got != DefaultInputPath {
		t.Errorf("GetInputPath() = %q, want %q", got, DefaultInputPath)
	}
	if got := cfg.GetPlotPath(); got != DefaultPlotPath {
		t.Errorf("GetPlotPath() = %q, want %q", got, DefaultPlotPath)
	}
	if got := cfg.GetArchivePath(); got != DefaultArchivePath {
		t.Errorf("GetArchivePath() = %q, want %q", got, DefaultArchivePath)
	}
	if _, _, ok := cfg.GetYLimits(); ok {
		t.Error("GetYLimits() ok = true for empty config")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on empty config: %v", err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.InputPath == nil || *cfg.InputPath != DefaultInputPath {
		t.Errorf("Expected InputPath %q, got %v", DefaultInputPath, cfg.InputPath)
	}
	if cfg.PlotPath == nil || *cfg.PlotPath != DefaultPlotPath {
		t.Errorf("Expected PlotPath %q, got %v", DefaultPlotPath, cfg.PlotPath)
	}
	if cfg.ArchivePath == nil || *cfg.ArchivePath != DefaultArchivePath {
		t.Errorf("Expected ArchivePath %q, got %v", DefaultArchivePath, cfg.ArchivePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "run.json")

	testJSON := `{
  "input_path": "data/si.hdf5",
  "plot_path": "",
  "npz_path": "out/si.npz",
  "y_min": -1.5,
  "y_max": 20
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if got := cfg.GetInputPath(); got != "data/si.hdf5" {
		t.Errorf("GetInputPath() = %q, want data/si.hdf5", got)
	}
	if got := cfg.GetPlotPath(); got != "" {
		t.Errorf("GetPlotPath() = %q, want empty for interactive display", got)
	}
	if got := cfg.GetArchivePath(); got != "out/si.npz" {
		t.Errorf("GetArchivePath() = %q, want out/si.npz", got)
	}
	lo, hi, ok := cfg.GetYLimits()
	if !ok || lo != -1.5 || hi != 20 {
		t.Errorf("GetYLimits() = %v, %v, %v; want -1.5, 20, true", lo, hi, ok)
	}
}

func TestLoadConfig_Partial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(configPath, []byte(`{"npz_path": "x.npz"}`), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if got := cfg.GetInputPath(); got != DefaultInputPath {
		t.Errorf("GetInputPath() = %q, want default", got)
	}
	if got := cfg.GetArchivePath(); got != "x.npz" {
		t.Errorf("GetArchivePath() = %q, want x.npz", got)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
		return path
	}

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "wrong extension", path: write("cfg.yaml", "{}"), wantErr: ".json extension"},
		{name: "missing file", path: filepath.Join(tmpDir, "absent.json"), wantErr: "stat"},
		{name: "bad json", path: write("bad.json", "{"), wantErr: "parse"},
		{name: "inverted limits", path: write("inv.json", `{"y_min": 10, "y_max": 1}`), wantErr: "less than"},
		{name: "bad archive extension", path: write("ext.json", `{"npz_path": "out.zip"}`), wantErr: ".npz"},
		{name: "too large", path: write("big.json", `{"input_path": "`+strings.Repeat("a", maxFileSize)+`"}`), wantErr: "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{name: "ordered limits", cfg: &Config{YMin: ptrFloat64(0), YMax: ptrFloat64(15)}},
		{name: "equal limits", cfg: &Config{YMin: ptrFloat64(3), YMax: ptrFloat64(3)}, wantErr: true},
		{name: "inverted limits", cfg: &Config{YMin: ptrFloat64(9), YMax: ptrFloat64(1)}, wantErr: true},
		{name: "only y_min", cfg: &Config{YMin: ptrFloat64(1)}, wantErr: true},
		{name: "only y_max", cfg: &Config{YMax: ptrFloat64(1)}, wantErr: true},
		{name: "empty input", cfg: &Config{InputPath: ptrString("")}, wantErr: true},
		{name: "interactive plot", cfg: &Config{PlotPath: ptrString("")}},
		{name: "npz extension", cfg: &Config{ArchivePath: ptrString("a/b.npz")}},
		{name: "missing npz extension", cfg: &Config{ArchivePath: ptrString("a/b")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetYLimits(t *testing.T) {
	cfg := Empty()
	cfg.SetYLimits(-2, 8)

	lo, hi, ok := cfg.GetYLimits()
	if !ok || lo != -2 || hi != 8 {
		t.Errorf("GetYLimits() = %v, %v, %v; want -2, 8, true", lo, hi, ok)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}
