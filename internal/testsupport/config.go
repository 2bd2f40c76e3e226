package testsupport

import (
	"path/filepath"
	"testing"

	"moviedb/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// The collection lives at <base>/movies.json, online lookups are disabled, and
// logging is limited to errors. Options run after the defaults are applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Storage.Path = filepath.Join(base, "movies.json")
	cfgVal.Metadata.Provider = config.ProviderNone
	cfgVal.Metadata.APIKey = ""
	cfgVal.Metadata.BaseURL = ""
	cfgVal.Logging.Level = "error"
	cfgVal.Report.OutputDir = filepath.Join(base, "reports")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStorageFormat stores the collection as movies.<format>.
func WithStorageFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Format = format
		b.cfg.Storage.Path = filepath.Join(b.baseDir, "movies."+format)
	}
}

// WithMetadata enables a lookup provider against baseURL, typically an
// httptest server.
func WithMetadata(provider, apiKey, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Metadata.Provider = provider
		b.cfg.Metadata.APIKey = apiKey
		b.cfg.Metadata.BaseURL = baseURL
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Storage.Path)
}
