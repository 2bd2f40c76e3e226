package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"moviedb/internal/logging"
	"moviedb/internal/metadata"
	"moviedb/internal/movie"
	"moviedb/internal/storage"
)

const (
	// MinRating and MaxRating bound user-facing ratings.
	MinRating = 1.0
	MaxRating = 10.0
	// FirstFilmYear is the earliest release year accepted.
	FirstFilmYear = 1888
	// futureYearSlack admits announced releases a few years ahead.
	futureYearSlack = 5

	defaultSuggestionLimit = 3
	defaultLookupTimeout   = 10 * time.Second
)

var (
	ErrEmptyTitle          = errors.New("title must not be empty")
	ErrInvalidRating       = errors.New("rating must be between 1 and 10")
	ErrInvalidYear         = errors.New("year is out of range")
	ErrDuplicate           = errors.New("movie already exists")
	ErrNotFound            = errors.New("movie not found")
	ErrMovieNotFoundOnline = errors.New("movie not found online; supply a rating to add it manually")
	ErrEmptyCollection     = errors.New("collection is empty")
)

// Service implements the collection commands on top of a Storage backend.
type Service struct {
	store           storage.Storage
	lookup          metadata.Lookup
	logger          *slog.Logger
	now             func() time.Time
	rng             *rand.Rand
	suggestionLimit int
	lookupTimeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLookup enables online enrichment on Add. A nil lookup disables it.
func WithLookup(lookup metadata.Lookup) Option {
	return func(s *Service) { s.lookup = lookup }
}

// WithLogger attaches a logger; events are logged under the "catalog" component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for year validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRand overrides the random source used by Random.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithSuggestionLimit caps the number of "did you mean" titles Search returns.
func WithSuggestionLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.suggestionLimit = n
		}
	}
}

// WithLookupTimeout bounds each enrichment lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// New returns a Service backed by store.
func New(store storage.Storage, opts ...Option) *Service {
	s := &Service{
		store:           store,
		now:             time.Now,
		rng:             rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		suggestionLimit: defaultSuggestionLimit,
		lookupTimeout:   defaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "catalog")
	return s
}

// EnrichmentAvailable reports whether Add can consult an online provider.
func (s *Service) EnrichmentAvailable() bool {
	return s.lookup != nil
}

// AddRequest describes a movie to add. Zero Year and Rating, and empty Poster
// and Link, mean "not supplied"; enrichment may fill them.
type AddRequest struct {
	Title  string
	Year   int
	Rating float64
	Poster string
	Link   string
	// Enrich asks the configured provider for missing fields.
	Enrich bool
}

// Add validates req, optionally enriches it, and stores it. It returns the
// record as persisted.
func (s *Service) Add(ctx context.Context, req AddRequest) (movie.Movie, error) {
	m := movie.Movie{
		Title:  strings.TrimSpace(req.Title),
		Year:   req.Year,
		Rating: req.Rating,
		Poster: strings.TrimSpace(req.Poster),
		Link:   strings.TrimSpace(req.Link),
	}
	if m.Title == "" {
		return movie.Movie{}, ErrEmptyTitle
	}
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldTitle, m.Title))

	if req.Enrich && s.lookup != nil {
		existing, err := s.store.List()
		if err != nil {
			return movie.Movie{}, err
		}
		if existing.Has(m.Title) {
			return movie.Movie{}, fmt.Errorf("%w: %q", ErrDuplicate, m.Title)
		}
		if err := s.enrich(ctx, logger, &m); err != nil {
			return movie.Movie{}, err
		}
	}

	if err := s.validate(m); err != nil {
		return movie.Movie{}, err
	}
	if m.Poster == "" {
		m.Poster = movie.PlaceholderPoster
	}
	m = m.WithDefaults()

	added, err := s.store.Add(m)
	if err != nil {
		return movie.Movie{}, err
	}
	if !added {
		return movie.Movie{}, fmt.Errorf("%w: %q", ErrDuplicate, m.Title)
	}
	logger.Info("movie added", logging.Int("year", m.Year), logging.Float64("rating", m.Rating))
	return m, nil
}

func (s *Service) enrich(ctx context.Context, logger *slog.Logger, m *movie.Movie) error {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	rec, err := s.lookup.Lookup(lookupCtx, m.Title, m.Year)
	switch {
	case errors.Is(err, metadata.ErrNotFound):
		if m.Rating == 0 {
			return fmt.Errorf("%w: %q", ErrMovieNotFoundOnline, m.Title)
		}
		logger.Info("movie not found online; keeping manual details")
		return nil
	case err != nil:
		return fmt.Errorf("look up %q: %w", m.Title, err)
	}

	if m.Year == 0 {
		m.Year = rec.Year
	}
	if m.Rating == 0 {
		m.Rating = rec.Rating
	}
	if m.Poster == "" {
		m.Poster = rec.Poster
	}
	if m.Link == "" {
		m.Link = rec.Link
	}
	if m.Rating == 0 {
		return fmt.Errorf("%w: no online rating for %q; supply one", ErrInvalidRating, m.Title)
	}
	logger.Debug("movie enriched",
		logging.String("matched_title", rec.Title),
		logging.Int("year", m.Year),
		logging.Float64("rating", m.Rating))
	return nil
}

func (s *Service) validate(m movie.Movie) error {
	if err := ValidateRating(m.Rating); err != nil {
		return err
	}
	return s.ValidateYear(m.Year)
}

// ValidateRating checks that rating lies within MinRating..MaxRating.
func ValidateRating(rating float64) error {
	if math.IsNaN(rating) || rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %g", ErrInvalidRating, rating)
	}
	return nil
}

// ValidateYear accepts 0 (unknown) or FirstFilmYear through a few years past
// the current year.
func (s *Service) ValidateYear(year int) error {
	if year == 0 {
		return nil
	}
	latest := s.now().Year() + futureYearSlack
	if year < FirstFilmYear || year > latest {
		return fmt.Errorf("%w: %d is not within %d-%d", ErrInvalidYear, year, FirstFilmYear, latest)
	}
	return nil
}

// Delete removes the movie matching title, ignoring case.
func (s *Service) Delete(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	removed, err := s.store.Delete(title)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	logging.WithContext(ctx, s.logger).Info("movie deleted", logging.String(logging.FieldTitle, title))
	return nil
}

// Update replaces the rating of the movie matching title.
func (s *Service) Update(ctx context.Context, title string, rating float64) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if err := ValidateRating(rating); err != nil {
		return err
	}
	updated, err := s.store.Update(title, rating)
	if err != nil {
		return err
	}
	if !updated {
		return fmt.Errorf("%w: %q", ErrNotFound, title)
	}
	logging.WithContext(ctx, s.logger).Info("movie rating updated",
		logging.String(logging.FieldTitle, title),
		logging.Float64("rating", rating))
	return nil
}

// Listing is the collection as read from storage. Warning is set, and Movies
// is empty, when the backing file could not be decoded.
type Listing struct {
	Movies  []movie.Movie
	Warning error
}

// List returns every movie in insertion order. Malformed data is reported
// through Listing.Warning rather than as an error so callers can decide
// whether to continue with an empty collection.
func (s *Service) List() (Listing, error) {
	c, err := s.store.List()
	if err != nil {
		if errors.Is(err, storage.ErrMalformedData) {
			return Listing{Movies: []movie.Movie{}, Warning: err}, nil
		}
		return Listing{}, err
	}
	return Listing{Movies: c.Movies()}, nil
}

// movies loads the collection for read-only queries.
func (s *Service) movies() ([]movie.Movie, error) {
	c, err := s.store.List()
	if err != nil {
		return nil, err
	}
	return c.Movies(), nil
}
