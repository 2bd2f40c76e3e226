package metadata

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"moviedb/internal/logging"
	"moviedb/internal/metadata/tmdb"
)

const (
	tmdbPosterBase = "https://image.tmdb.org/t/p/w500"
	tmdbMovieURL   = "https://www.themoviedb.org/movie/"
)

// TMDBLookup adapts the TMDB client to Lookup. The first search result is
// taken as the match.
type TMDBLookup struct {
	client tmdb.Searcher
	logger *slog.Logger
}

// NewTMDB wraps a TMDB searcher.
func NewTMDB(client tmdb.Searcher, logger *slog.Logger) *TMDBLookup {
	return &TMDBLookup{client: client, logger: logging.NewComponentLogger(logger, "tmdb")}
}

func (l *TMDBLookup) Lookup(ctx context.Context, title string, year int) (*Record, error) {
	resp, err := l.client.SearchMovieWithOptions(ctx, title, tmdb.SearchOptions{Year: year})
	if err != nil {
		serviceErr := &ServiceError{Provider: "tmdb", Err: err}
		var statusErr *tmdb.StatusError
		if errors.As(err, &statusErr) {
			serviceErr.StatusCode = statusErr.StatusCode
		}
		return nil, serviceErr
	}
	if resp == nil || len(resp.Results) == 0 {
		l.logger.Debug("tmdb lookup miss", logging.String(logging.FieldTitle, title))
		return nil, ErrNotFound
	}

	best := resp.Results[0]
	rec := &Record{
		Title:  strings.TrimSpace(best.Title),
		Rating: best.VoteAverage,
	}
	if len(best.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(best.ReleaseDate[:4]); err == nil {
			rec.Year = y
		}
	}
	if best.PosterPath != "" {
		rec.Poster = tmdbPosterBase + best.PosterPath
	}
	if best.ID > 0 {
		rec.Link = tmdbMovieURL + strconv.FormatInt(best.ID, 10)
	}
	l.logger.Debug("tmdb lookup hit",
		logging.String(logging.FieldTitle, rec.Title),
		logging.Int("year", rec.Year),
		logging.Int("candidates", len(resp.Results)))
	return rec, nil
}
