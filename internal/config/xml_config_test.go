package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("creates default config when missing", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "ModelConverter.exe.config")

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}

		if cfg.Server.Port != 8090 {
			t.Errorf("Expected default port 8090, got %d", cfg.Server.Port)
		}
		if cfg.Limits.ConvertTimeoutSeconds != 30 {
			t.Errorf("Expected default convert timeout 30, got %d", cfg.Limits.ConvertTimeoutSeconds)
		}

		// The default file should now exist on disk
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			t.Error("Expected default config file to be written")
		}
	})

	t.Run("parses existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "ModelConverter.exe.config")
		content := `<?xml version="1.0" encoding="UTF-8"?>
<ModelConverter>
  <Server>
    <Port>9999</Port>
    <BindAddress>127.0.0.1</BindAddress>
    <BodyLimit>4M</BodyLimit>
  </Server>
  <Storage>
    <DataDirectory>./mydata</DataDirectory>
    <UploadsDirectory>./mydata/uploads</UploadsDirectory>
    <HistoryDatabase>./mydata/history.duckdb</HistoryDatabase>
  </Storage>
  <Limits>
    <MaxInputSizeKB>1024</MaxInputSizeKB>
    <ConvertTimeoutSeconds>15</ConvertTimeoutSeconds>
  </Limits>
</ModelConverter>`
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}

		if cfg.Server.Port != 9999 {
			t.Errorf("Expected port 9999, got %d", cfg.Server.Port)
		}
		if cfg.Server.BindAddress != "127.0.0.1" {
			t.Errorf("Expected bind address 127.0.0.1, got %s", cfg.Server.BindAddress)
		}
		if cfg.Limits.ConvertTimeoutSeconds != 15 {
			t.Errorf("Expected convert timeout 15, got %d", cfg.Limits.ConvertTimeoutSeconds)
		}
		if cfg.GetServerAddr() != "127.0.0.1:9999" {
			t.Errorf("Unexpected server addr %s", cfg.GetServerAddr())
		}
	})

	t.Run("resolves relative paths against config dir", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "ModelConverter.exe.config")

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		// First run writes the default file; reload to exercise the parse path
		cfg, err = LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Failed to reload config: %v", err)
		}

		if !filepath.IsAbs(cfg.GetDataDir()) {
			t.Errorf("Expected absolute data dir, got %s", cfg.GetDataDir())
		}
		if !filepath.IsAbs(cfg.Storage.HistoryDatabase) {
			t.Errorf("Expected absolute history db path, got %s", cfg.Storage.HistoryDatabase)
		}
	})

	t.Run("applies PORT environment override", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "ModelConverter.exe.config")

		// Write the default file first so LoadConfig takes the parse path,
		// which is where overrides apply.
		if _, err := LoadConfig(configPath); err != nil {
			t.Fatalf("Failed to create config: %v", err)
		}

		t.Setenv("PORT", "7070")
		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}

		if cfg.Server.Port != 7070 {
			t.Errorf("Expected port override 7070, got %d", cfg.Server.Port)
		}
	})
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Storage.DataDirectory = filepath.Join(dir, "data")
	cfg.Storage.UploadsDirectory = filepath.Join(dir, "data", "uploads")
	cfg.Storage.HistoryDatabase = filepath.Join(dir, "data", "history.duckdb")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("Failed to ensure directories: %v", err)
	}

	for _, d := range []string{cfg.Storage.DataDirectory, cfg.Storage.UploadsDirectory} {
		if _, err := os.Stat(d); os.IsNotExist(err) {
			t.Errorf("Expected directory %s to exist", d)
		}
	}
}
