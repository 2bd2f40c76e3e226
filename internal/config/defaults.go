package config

const (
	defaultStoragePath      = "~/.local/share/moviedb/movies.json"
	defaultStorageFormat    = FormatAuto
	defaultStorageLock      = true
	defaultProvider         = ProviderOMDb
	defaultOMDbBaseURL      = "https://www.omdbapi.com"
	defaultTMDBBaseURL      = "https://api.themoviedb.org/3"
	defaultLanguage         = "en-US"
	defaultTimeoutSeconds   = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "warn"
	defaultReportTitle      = "My Movie Collection"
	defaultReportOutputDir  = "."
	defaultHistogramBins    = 5
	defaultSuggestionLimit  = 3
	defaultEnrichOnAdd      = true
	maxHistogramBins        = 20
	maxTimeoutSeconds       = 120
	defaultConfigPathString = "~/.config/moviedb/config.toml"
	projectConfigName       = "moviedb.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			Path:   defaultStoragePath,
			Format: defaultStorageFormat,
			Lock:   defaultStorageLock,
		},
		Metadata: Metadata{
			Provider:       defaultProvider,
			Language:       defaultLanguage,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Catalog: Catalog{
			EnrichOnAdd:     defaultEnrichOnAdd,
			HistogramBins:   defaultHistogramBins,
			SuggestionLimit: defaultSuggestionLimit,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Report: Report{
			Title:     defaultReportTitle,
			OutputDir: defaultReportOutputDir,
		},
	}
}
