package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"moviedb/internal/config"
)

func TestLoadDefaultConfigUsesEnvKeyAndExpandsPaths(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "env-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

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

	wantPath := filepath.Join(tempHome, ".local", "share", "moviedb", "movies.json")
	if cfg.Storage.Path != wantPath {
		t.Fatalf("unexpected storage path: got %q want %q", cfg.Storage.Path, wantPath)
	}
	if cfg.Storage.Format != config.FormatAuto {
		t.Fatalf("unexpected storage format %q", cfg.Storage.Format)
	}
	if !cfg.Storage.Lock {
		t.Fatal("expected storage lock enabled by default")
	}
	if cfg.Metadata.Provider != config.ProviderOMDb {
		t.Fatalf("unexpected provider %q", cfg.Metadata.Provider)
	}
	if cfg.Metadata.APIKey != "env-key" {
		t.Fatalf("expected OMDb key from env, got %q", cfg.Metadata.APIKey)
	}
	if cfg.Metadata.BaseURL != "https://www.omdbapi.com" {
		t.Fatalf("unexpected base url %q", cfg.Metadata.BaseURL)
	}
	if cfg.LookupTimeout() != 10*time.Second {
		t.Fatalf("unexpected lookup timeout %v", cfg.LookupTimeout())
	}
	if !cfg.MetadataEnabled() {
		t.Fatal("expected metadata enabled with key present")
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(filepath.Dir(cfg.Storage.Path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected storage directory to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "moviedb.toml")

	type payload struct {
		Storage struct {
			Path   string `toml:"path"`
			Format string `toml:"format"`
		} `toml:"storage"`
		Metadata struct {
			Provider string `toml:"provider"`
			APIKey   string `toml:"api_key"`
		} `toml:"metadata"`
		Catalog struct {
			HistogramBins int `toml:"histogram_bins"`
		} `toml:"catalog"`
	}
	custom := payload{}
	custom.Storage.Path = filepath.Join(tempDir, "films.csv")
	custom.Storage.Format = "CSV"
	custom.Metadata.Provider = "tmdb"
	custom.Metadata.APIKey = "abc123"
	custom.Catalog.HistogramBins = 10
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Storage.Format != config.FormatCSV {
		t.Fatalf("expected lower-cased csv format, got %q", cfg.Storage.Format)
	}
	if cfg.Metadata.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("expected TMDB default base url, got %q", cfg.Metadata.BaseURL)
	}
	if cfg.Metadata.APIKey != "abc123" {
		t.Fatalf("expected key from file, got %q", cfg.Metadata.APIKey)
	}
	if cfg.Catalog.HistogramBins != 10 {
		t.Fatalf("expected 10 bins, got %d", cfg.Catalog.HistogramBins)
	}
}

func TestFileKeyWinsOverEnvironment(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "moviedb.toml")
	if err := os.WriteFile(configPath, []byte("[metadata]\napi_key = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("OMDB_API_KEY", "from-env")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Metadata.APIKey != "from-file" {
		t.Fatalf("expected file key, got %q", cfg.Metadata.APIKey)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "moviedb.toml")
	if err := os.WriteFile(configPath, []byte("[storage\npath = 1"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "your_omdb_api_key_here") {
		t.Fatalf("sample config missing placeholder key: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Storage.Path, "moviedb") {
		t.Fatalf("expected storage path to mention moviedb, got %q", cfg.Storage.Path)
	}
}

func TestApplyOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "tmdb-env")
	cfg := config.Default()
	dir := t.TempDir()

	err := cfg.ApplyOverrides(config.Overrides{
		StoragePath:   filepath.Join(dir, "movies.csv"),
		StorageFormat: "csv",
		LogLevel:      "DEBUG",
		Provider:      "tmdb",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if cfg.Storage.Path != filepath.Join(dir, "movies.csv") {
		t.Fatalf("unexpected path %q", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lower-cased level, got %q", cfg.Logging.Level)
	}
	if cfg.Metadata.APIKey != "tmdb-env" || cfg.Metadata.BaseURL != "https://api.themoviedb.org/3" {
		t.Fatalf("expected TMDB settings after provider switch, got %+v", cfg.Metadata)
	}

	if err := cfg.ApplyOverrides(config.Overrides{StorageFormat: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"format", func(c *config.Config) { c.Storage.Format = "yaml" }, "storage.format"},
		{"provider", func(c *config.Config) { c.Metadata.Provider = "imdb" }, "metadata.provider"},
		{"timeout", func(c *config.Config) { c.Metadata.TimeoutSeconds = 600 }, "metadata.timeout_seconds"},
		{"bins", func(c *config.Config) { c.Catalog.HistogramBins = 50 }, "catalog.histogram_bins"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
		{"path", func(c *config.Config) { c.Storage.Path = "" }, "storage.path"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
