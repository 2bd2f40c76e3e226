package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeMetadata()
	c.normalizeCatalog()
	c.normalizeLogging()
	return c.normalizeReport()
}

func (c *Config) normalizeStorage() error {
	var err error
	if strings.TrimSpace(c.Storage.Path) == "" {
		c.Storage.Path = defaultStoragePath
	}
	if c.Storage.Path, err = expandPath(strings.TrimSpace(c.Storage.Path)); err != nil {
		return fmt.Errorf("storage.path: %w", err)
	}
	c.Storage.Format = strings.ToLower(strings.TrimSpace(c.Storage.Format))
	if c.Storage.Format == "" {
		c.Storage.Format = defaultStorageFormat
	}
	return nil
}

func (c *Config) normalizeMetadata() {
	c.Metadata.Provider = strings.ToLower(strings.TrimSpace(c.Metadata.Provider))
	if c.Metadata.Provider == "" {
		c.Metadata.Provider = defaultProvider
	}
	c.Metadata.APIKey = strings.TrimSpace(c.Metadata.APIKey)
	if c.Metadata.APIKey == "" {
		if env := providerKeyEnv(c.Metadata.Provider); env != "" {
			if value, ok := os.LookupEnv(env); ok {
				c.Metadata.APIKey = strings.TrimSpace(value)
			}
		}
	}
	c.Metadata.BaseURL = strings.TrimRight(strings.TrimSpace(c.Metadata.BaseURL), "/")
	if c.Metadata.BaseURL == "" {
		switch c.Metadata.Provider {
		case ProviderOMDb:
			c.Metadata.BaseURL = defaultOMDbBaseURL
		case ProviderTMDB:
			c.Metadata.BaseURL = defaultTMDBBaseURL
		}
	}
	c.Metadata.Language = strings.TrimSpace(c.Metadata.Language)
	if c.Metadata.Language == "" {
		c.Metadata.Language = defaultLanguage
	}
	if c.Metadata.TimeoutSeconds <= 0 {
		c.Metadata.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func providerKeyEnv(provider string) string {
	switch provider {
	case ProviderOMDb:
		return "OMDB_API_KEY"
	case ProviderTMDB:
		return "TMDB_API_KEY"
	default:
		return ""
	}
}

func (c *Config) normalizeCatalog() {
	if c.Catalog.HistogramBins <= 0 {
		c.Catalog.HistogramBins = defaultHistogramBins
	}
	if c.Catalog.SuggestionLimit <= 0 {
		c.Catalog.SuggestionLimit = defaultSuggestionLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if expanded, err := expandPath(file); err == nil {
			c.Logging.File = expanded
		}
	}
}

func (c *Config) normalizeReport() error {
	var err error
	c.Report.Title = strings.TrimSpace(c.Report.Title)
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
	if strings.TrimSpace(c.Report.OutputDir) == "" {
		c.Report.OutputDir = defaultReportOutputDir
	}
	if c.Report.OutputDir, err = expandPath(c.Report.OutputDir); err != nil {
		return fmt.Errorf("report.output_dir: %w", err)
	}
	return nil
}

// Overrides carries command-line values that take precedence over the file.
type Overrides struct {
	StoragePath   string
	StorageFormat string
	LogLevel      string
	Provider      string
}

// ApplyOverrides merges non-empty overrides into c and re-runs normalization
// and validation so flag values obey the same rules as file values.
func (c *Config) ApplyOverrides(o Overrides) error {
	if v := strings.TrimSpace(o.StoragePath); v != "" {
		c.Storage.Path = v
	}
	if v := strings.TrimSpace(o.StorageFormat); v != "" {
		c.Storage.Format = v
	}
	if v := strings.TrimSpace(o.LogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := strings.TrimSpace(o.Provider); v != "" && !strings.EqualFold(v, c.Metadata.Provider) {
		c.Metadata.Provider = v
		c.Metadata.BaseURL = ""
		c.Metadata.APIKey = ""
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}
