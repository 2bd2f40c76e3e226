package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateMetadata(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateStorage() error {
	if c.Storage.Path == "" {
		return errors.New("storage.path must be set")
	}
	switch c.Storage.Format {
	case FormatAuto, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("storage.format: unsupported value %q (want auto, json, or csv)", c.Storage.Format)
	}
}

func (c *Config) validateMetadata() error {
	switch c.Metadata.Provider {
	case ProviderOMDb, ProviderTMDB, ProviderNone:
	default:
		return fmt.Errorf("metadata.provider: unsupported value %q (want omdb, tmdb, or none)", c.Metadata.Provider)
	}
	if c.Metadata.TimeoutSeconds > maxTimeoutSeconds {
		return fmt.Errorf("metadata.timeout_seconds must be at most %d", maxTimeoutSeconds)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.HistogramBins > maxHistogramBins {
		return fmt.Errorf("catalog.histogram_bins must be between 1 and %d", maxHistogramBins)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
