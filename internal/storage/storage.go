package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"moviedb/internal/logging"
	"moviedb/internal/movie"
)

// Storage is the record-management contract shared by all backends.
type Storage interface {
	// List returns the whole collection freshly read from the backing file.
	List() (*movie.Collection, error)
	// Add inserts m. It returns false without mutating anything when a record
	// with the same normalized title exists. An empty link is synthesized.
	Add(m movie.Movie) (bool, error)
	// Delete removes the record matching title, ignoring case. It returns
	// false when nothing matched.
	Delete(title string) (bool, error)
	// Update replaces the rating of the record matching title, ignoring case.
	// It returns false when nothing matched.
	Update(title string, rating float64) (bool, error)
}

var (
	// ErrInvalidMovie reports a record that violates storage invariants.
	ErrInvalidMovie = errors.New("invalid movie record")
	// ErrMalformedData reports a collection file that cannot be decoded.
	ErrMalformedData = errors.New("malformed collection data")
)

// MalformedDataError describes why a collection file could not be decoded.
// errors.Is(err, ErrMalformedData) holds for every MalformedDataError.
type MalformedDataError struct {
	Path   string
	Format string
	// Line is the 1-based line of the problem, or 0 when unknown.
	Line int
	Err  error
}

func (e *MalformedDataError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	return fmt.Sprintf("malformed %s data in %s: %v", e.Format, loc, e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

func (e *MalformedDataError) Is(target error) bool { return target == ErrMalformedData }

// codec converts between a collection and one physical file format.
type codec interface {
	format() string
	// decode returns a *MalformedDataError for content problems and a plain
	// error for read failures.
	decode(r io.Reader) (*movie.Collection, error)
	encode(w io.Writer, c *movie.Collection) error
}

// Option configures a file-backed store.
type Option func(*fileStore)

// WithLogger attaches a logger; storage events are logged under the
// "storage" component.
func WithLogger(logger *slog.Logger) Option {
	return func(s *fileStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLock enables an advisory lock file guarding each operation.
func WithLock(enabled bool) Option {
	return func(s *fileStore) {
		s.locking = enabled
	}
}

// fileStore holds the whole-file lifecycle shared by the JSON and CSV backends.
type fileStore struct {
	path    string
	codec   codec
	logger  *slog.Logger
	locking bool
}

func newFileStore(path string, c codec, opts ...Option) *fileStore {
	s := &fileStore{path: path, codec: c}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "storage").With(
		logging.String(logging.FieldPath, path),
		logging.String("format", c.format()),
	)
	return s
}

// Path returns the backing file path.
func (s *fileStore) Path() string { return s.path }

// Format returns the backend's encoding name.
func (s *fileStore) Format() string { return s.codec.format() }

func (s *fileStore) List() (*movie.Collection, error) {
	unlock, err := s.acquire(false)
	if err != nil {
		return movie.NewCollection(), err
	}
	defer unlock()

	return s.load()
}

func (s *fileStore) Add(m movie.Movie) (bool, error) {
	if err := m.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidMovie, err)
	}
	m = m.WithDefaults()

	added, err := s.mutate(func(c *movie.Collection) bool {
		return c.Insert(m)
	})
	if err != nil {
		return false, err
	}
	if added {
		s.logger.Debug("movie added", logging.String(logging.FieldTitle, m.Title))
	} else {
		s.logger.Debug("movie already exists", logging.String(logging.FieldTitle, m.Title))
	}
	return added, nil
}

func (s *fileStore) Delete(title string) (bool, error) {
	removed, err := s.mutate(func(c *movie.Collection) bool {
		_, ok := c.Remove(title)
		return ok
	})
	if err != nil {
		return false, err
	}
	s.logger.Debug("delete movie", logging.String(logging.FieldTitle, title), logging.Bool("removed", removed))
	return removed, nil
}

func (s *fileStore) Update(title string, rating float64) (bool, error) {
	if err := (movie.Movie{Title: title, Rating: rating}).Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidMovie, err)
	}
	updated, err := s.mutate(func(c *movie.Collection) bool {
		return c.SetRating(title, rating)
	})
	if err != nil {
		return false, err
	}
	s.logger.Debug("update movie rating",
		logging.String(logging.FieldTitle, title),
		logging.Float64("rating", rating),
		logging.Bool("updated", updated))
	return updated, nil
}

// mutate runs load, fn, save. Nothing is written when fn reports no change
// or when the file could not be loaded.
func (s *fileStore) mutate(fn func(*movie.Collection) bool) (bool, error) {
	unlock, err := s.acquire(true)
	if err != nil {
		return false, err
	}
	defer unlock()

	c, err := s.load()
	if err != nil {
		return false, err
	}
	if !fn(c) {
		return false, nil
	}
	if err := s.save(c); err != nil {
		return false, err
	}
	return true, nil
}

func (s *fileStore) load() (*movie.Collection, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("collection file absent; starting empty")
			return movie.NewCollection(), nil
		}
		return movie.NewCollection(), fmt.Errorf("open movies file: %w", err)
	}
	defer file.Close()

	c, err := s.codec.decode(file)
	if err != nil {
		var malformed *MalformedDataError
		if errors.As(err, &malformed) {
			malformed.Path = s.path
			malformed.Format = s.codec.format()
			logging.WarnWithContext(s.logger, "collection file is malformed", "storage_malformed",
				logging.Error(malformed),
				logging.String(logging.FieldErrorHint, "fix or remove the file; changes are refused until then"),
				logging.String(logging.FieldImpact, "collection treated as empty"))
			return movie.NewCollection(), malformed
		}
		return movie.NewCollection(), fmt.Errorf("read movies file: %w", err)
	}

	s.logger.Debug("loaded collection", logging.Int("count", c.Len()))
	return c, nil
}

func (s *fileStore) save(c *movie.Collection) error {
	if err := writeFileAtomic(s.path, func(w io.Writer) error {
		return s.codec.encode(w, c)
	}); err != nil {
		return fmt.Errorf("write movies file: %w", err)
	}
	s.logger.Debug("saved collection", logging.Int("count", c.Len()))
	return nil
}

func (s *fileStore) acquire(exclusive bool) (func(), error) {
	if !s.locking {
		return func() {}, nil
	}
	return lockFile(s.path, exclusive)
}

func malformedAt(line int, err error) *MalformedDataError {
	return &MalformedDataError{Line: line, Err: err}
}
