package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"moviedb/internal/catalog"
	"moviedb/internal/config"
	"moviedb/internal/logging"
	"moviedb/internal/metadata"
	"moviedb/internal/storage"
)

// globalFlags holds the persistent flag values shared by every command.
type globalFlags struct {
	config   string
	file     string
	format   string
	logLevel string
	provider string
	json     bool
}

type commandContext struct {
	flags globalFlags

	// Test hooks.
	httpClient *http.Client
	now        func() time.Time

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	serviceOnce sync.Once
	logger      *slog.Logger
	store       storage.FileStore
	service     *catalog.Service
	serviceErr  error
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.ApplyOverrides(config.Overrides{
			StoragePath:   c.flags.file,
			StorageFormat: c.flags.format,
			LogLevel:      c.flags.logLevel,
			Provider:      c.flags.provider,
		}); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configExists = exists
	})
	return c.config, c.configErr
}

// ensureService wires config, logging, storage, and metadata into a catalog
// service once per invocation.
func (c *commandContext) ensureService() (*catalog.Service, error) {
	c.serviceOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.serviceErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.serviceErr = fmt.Errorf("init logging: %w", err)
			return
		}
		store, err := storage.Open(cfg.Storage.Path, cfg.Storage.Format,
			storage.WithLogger(logger),
			storage.WithLock(cfg.Storage.Lock))
		if err != nil {
			c.serviceErr = err
			return
		}

		var metadataOpts []metadata.Option
		if c.httpClient != nil {
			metadataOpts = append(metadataOpts, metadata.WithHTTPClient(c.httpClient))
		}
		lookup, err := metadata.New(cfg, logger, metadataOpts...)
		if err != nil {
			c.serviceErr = err
			return
		}

		opts := []catalog.Option{
			catalog.WithLogger(logger),
			catalog.WithSuggestionLimit(cfg.Catalog.SuggestionLimit),
			catalog.WithLookupTimeout(cfg.LookupTimeout()),
		}
		if lookup != nil {
			opts = append(opts, catalog.WithLookup(lookup))
		}
		if c.now != nil {
			opts = append(opts, catalog.WithClock(c.now))
		}

		c.logger = logger
		c.store = store
		c.service = catalog.New(store, opts...)
		logger.Debug("collection opened",
			logging.String(logging.FieldPath, store.Path()),
			logging.String("format", store.Format()),
			logging.Bool("enrichment", lookup != nil))
	})
	return c.service, c.serviceErr
}

func (c *commandContext) jsonOutput() bool {
	return c.flags.json
}

// withCorrelationID tags the command context so every log line emitted during
// one invocation shares an identifier.
func withCorrelationID(cmd *cobra.Command) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	if _, ok := logging.CorrelationIDFromContext(parent); ok {
		return
	}
	cmd.SetContext(logging.WithCorrelationID(parent, uuid.NewString()))
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
