package metadata

import (
	"fmt"
	"log/slog"
	"net/http"

	"moviedb/internal/config"
	"moviedb/internal/logging"
	"moviedb/internal/metadata/omdb"
	"moviedb/internal/metadata/tmdb"
)

// Option configures provider construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient makes every provider use client instead of one built from
// the configured timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// New builds the Lookup selected by cfg.Metadata. It returns nil and no error
// when lookups are disabled or no API key is configured; callers treat a nil
// Lookup as "enrichment unavailable".
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (Lookup, error) {
	if cfg == nil || !cfg.MetadataEnabled() {
		if cfg != nil && cfg.Metadata.Provider != config.ProviderNone {
			logging.NewComponentLogger(logger, "metadata").Debug("metadata lookup disabled: no api key",
				logging.String("provider", cfg.Metadata.Provider))
		}
		return nil, nil
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	md := cfg.Metadata

	switch md.Provider {
	case config.ProviderOMDb:
		client, err := omdb.New(md.APIKey, md.BaseURL,
			omdb.WithTimeout(cfg.LookupTimeout()),
			omdb.WithHTTPClient(o.httpClient))
		if err != nil {
			return nil, fmt.Errorf("omdb client: %w", err)
		}
		return NewOMDb(client, logger), nil
	case config.ProviderTMDB:
		client, err := tmdb.New(md.APIKey, md.BaseURL, md.Language,
			tmdb.WithTimeout(cfg.LookupTimeout()),
			tmdb.WithHTTPClient(o.httpClient))
		if err != nil {
			return nil, fmt.Errorf("tmdb client: %w", err)
		}
		return NewTMDB(client, logger), nil
	default:
		return nil, fmt.Errorf("unsupported metadata provider %q", md.Provider)
	}
}
