package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"clipset/internal/config"
)

func TestLoadDefaultConfigUsesEnvClassesAndExpandsPaths(t *testing.T) {
	t.Setenv("CLIPSET_NUM_CLASSES", "12")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Dataset.NumClasses != 12 {
		t.Fatalf("expected class count from env, got %d", cfg.Dataset.NumClasses)
	}
	if cfg.Dataset.CropHeight != 224 || cfg.Dataset.CropWidth != 224 || cfg.Dataset.Channels != 3 {
		t.Fatalf("unexpected default shape: %s", cfg.Dims())
	}
	if cfg.Dataset.SampleFrames != 20 {
		t.Fatalf("unexpected default sample frames: %d", cfg.Dataset.SampleFrames)
	}
	if cfg.Dataset.RecordExt != ".tfrecord" {
		t.Fatalf("unexpected default record extension: %q", cfg.Dataset.RecordExt)
	}

	wantData := filepath.Join(tempHome, ".local", "share", "clipset", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.MetaDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "clipset.toml")

	type payload struct {
		Dataset struct {
			CropHeight int    `toml:"crop_height"`
			CropWidth  int    `toml:"crop_width"`
			NumClasses int    `toml:"num_classes"`
			RecordExt  string `toml:"record_ext"`
		} `toml:"dataset"`
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Dataset.CropHeight = 112
	custom.Dataset.CropWidth = 112
	custom.Dataset.NumClasses = 4
	custom.Dataset.RecordExt = "mp4"
	custom.Paths.DataDir = filepath.Join(tempDir, "videos")

	raw, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to resolve, got %q exists=%v", resolved, exists)
	}
	if cfg.Dataset.CropHeight != 112 || cfg.Dataset.CropWidth != 112 {
		t.Fatalf("unexpected crop shape: %s", cfg.Dims())
	}
	if cfg.Dataset.RecordExt != ".mp4" {
		t.Fatalf("expected record extension normalized with dot, got %q", cfg.Dataset.RecordExt)
	}
	if cfg.Paths.DataDir != custom.Paths.DataDir {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Dataset.Channels != 3 {
		t.Fatalf("expected default channels preserved, got %d", cfg.Dataset.Channels)
	}
}

func TestLoadRejectsMissingClassCount(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	os.Unsetenv("CLIPSET_NUM_CLASSES")

	if _, _, _, err := config.Load(""); err == nil {
		t.Fatal("expected validation error without class count")
	}
}

func TestLoadRejectsInvalidShape(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "clipset.toml")
	body := "[dataset]\ncrop_height = -1\nnum_classes = 2\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected validation error for negative crop height")
	}

	body = "[dataset]\nchannels = 4\nnum_classes = 2\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected validation error for unsupported channel count")
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample config returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Dataset.NumClasses != 10 {
		t.Fatalf("unexpected sample class count: %d", cfg.Dataset.NumClasses)
	}
}
