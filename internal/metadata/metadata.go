package metadata

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound reports that the provider has no match for the title.
var ErrNotFound = errors.New("movie not found online")

// Record carries the fields a provider can supply for a movie. Zero values
// mean the provider did not know the field.
type Record struct {
	Title  string
	Year   int
	Rating float64
	Poster string
	Link   string
}

// Lookup fetches movie metadata from an external source.
type Lookup interface {
	Lookup(ctx context.Context, title string, year int) (*Record, error)
}

// ServiceError reports a provider failure other than a miss: network errors,
// timeouts, unexpected HTTP status, or undecodable payloads.
// errors.Is(err, ErrNotFound) is always false for a ServiceError.
type ServiceError struct {
	Provider string
	// StatusCode is the HTTP status when the provider answered, or 0.
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s lookup failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s lookup failed: %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
