package metadata

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"moviedb/internal/logging"
	"moviedb/internal/metadata/omdb"
	"moviedb/internal/movie"
)

const imdbTitleURL = "https://www.imdb.com/title/"

type omdbTitleFetcher interface {
	ByTitle(ctx context.Context, title string, year int) (*omdb.Response, error)
}

// OMDbLookup adapts the OMDb client to Lookup.
type OMDbLookup struct {
	client omdbTitleFetcher
	logger *slog.Logger
}

// NewOMDb wraps an OMDb client.
func NewOMDb(client *omdb.Client, logger *slog.Logger) *OMDbLookup {
	return &OMDbLookup{client: client, logger: logging.NewComponentLogger(logger, "omdb")}
}

func (l *OMDbLookup) Lookup(ctx context.Context, title string, year int) (*Record, error) {
	start := time.Now()
	resp, err := l.client.ByTitle(ctx, title, year)
	if err != nil {
		if errors.Is(err, omdb.ErrNotFound) {
			l.logger.Debug("omdb lookup miss", logging.String(logging.FieldTitle, title))
			return nil, ErrNotFound
		}
		serviceErr := &ServiceError{Provider: "omdb", Err: err}
		var statusErr *omdb.StatusError
		if errors.As(err, &statusErr) {
			serviceErr.StatusCode = statusErr.StatusCode
		}
		return nil, serviceErr
	}

	rec := &Record{
		Title:  strings.TrimSpace(resp.Title),
		Poster: knownValue(resp.Poster),
	}
	if y, err := movie.ParseYear(knownValue(resp.Year)); err == nil {
		rec.Year = y
	}
	if r, err := strconv.ParseFloat(knownValue(resp.ImdbRating), 64); err == nil {
		rec.Rating = r
	}
	if id := knownValue(resp.ImdbID); id != "" {
		rec.Link = imdbTitleURL + id
	}
	l.logger.Debug("omdb lookup hit",
		logging.String(logging.FieldTitle, rec.Title),
		logging.Int("year", rec.Year),
		logging.Duration("latency", time.Since(start)))
	return rec, nil
}

// knownValue maps OMDb's "N/A" placeholder to an empty string.
func knownValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "n/a") {
		return ""
	}
	return v
}
