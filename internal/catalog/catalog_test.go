package catalog_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"moviedb/internal/catalog"
	"moviedb/internal/metadata"
	"moviedb/internal/movie"
	"moviedb/internal/storage"
	"moviedb/internal/testsupport"
)

type stubLookup struct {
	rec   *metadata.Record
	err   error
	calls int
	year  int
}

func (s *stubLookup) Lookup(ctx context.Context, title string, year int) (*metadata.Record, error) {
	s.calls++
	s.year = year
	if s.err != nil {
		return nil, s.err
	}
	return s.rec, nil
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func newService(t *testing.T, opts ...catalog.Option) (*catalog.Service, storage.FileStore) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	opts = append([]catalog.Option{catalog.WithClock(fixedClock)}, opts...)
	return catalog.New(store, opts...), store
}

func TestAddManualAppliesDefaults(t *testing.T) {
	svc, store := newService(t)

	got, err := svc.Add(context.Background(), catalog.AddRequest{Title: "  Heat ", Year: 1995, Rating: 8.3})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	want := movie.Movie{
		Title:  "Heat",
		Year:   1995,
		Rating: 8.3,
		Poster: movie.PlaceholderPoster,
		Link:   "https://www.imdb.com/find?q=Heat",
	}
	if got != want {
		t.Fatalf("unexpected movie:\n got %+v\nwant %+v", got, want)
	}
	c, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if stored, _ := c.Get("heat"); stored != want {
		t.Fatalf("stored movie differs: %+v", stored)
	}
}

func TestAddValidation(t *testing.T) {
	svc, _ := newService(t)
	tests := []struct {
		name string
		req  catalog.AddRequest
		want error
	}{
		{"blank title", catalog.AddRequest{Title: "  ", Rating: 5}, catalog.ErrEmptyTitle},
		{"rating too low", catalog.AddRequest{Title: "A", Rating: 0.5}, catalog.ErrInvalidRating},
		{"rating too high", catalog.AddRequest{Title: "A", Rating: 10.5}, catalog.ErrInvalidRating},
		{"missing rating", catalog.AddRequest{Title: "A"}, catalog.ErrInvalidRating},
		{"year too early", catalog.AddRequest{Title: "A", Rating: 5, Year: 1887}, catalog.ErrInvalidYear},
		{"year too late", catalog.AddRequest{Title: "A", Rating: 5, Year: 2030}, catalog.ErrInvalidYear},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := svc.Add(context.Background(), catalog.AddRequest{Title: "Next Year", Rating: 5, Year: 2029}); err != nil {
		t.Fatalf("year within slack should be accepted: %v", err)
	}
}

func TestAddDuplicateIsConflict(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Add(ctx, catalog.AddRequest{Title: "Alien", Rating: 8.5}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, catalog.AddRequest{Title: "ALIEN", Rating: 1}); !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestAddEnrichesMissingFields(t *testing.T) {
	lookup := &stubLookup{rec: &metadata.Record{
		Title:  "Inception",
		Year:   2010,
		Rating: 8.8,
		Poster: "https://img/inception.jpg",
		Link:   "https://www.imdb.com/title/tt1375666",
	}}
	svc, _ := newService(t, catalog.WithLookup(lookup))

	got, err := svc.Add(context.Background(), catalog.AddRequest{Title: "inception", Rating: 9.5, Enrich: true})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	want := movie.Movie{
		Title:  "inception",
		Year:   2010,
		Rating: 9.5,
		Poster: "https://img/inception.jpg",
		Link:   "https://www.imdb.com/title/tt1375666",
	}
	if got != want {
		t.Fatalf("unexpected movie:\n got %+v\nwant %+v", got, want)
	}
	if lookup.calls != 1 {
		t.Fatalf("expected one lookup, got %d", lookup.calls)
	}
}

func TestAddSkipsLookupForExistingTitle(t *testing.T) {
	lookup := &stubLookup{rec: &metadata.Record{Rating: 7}}
	svc, store := newService(t, catalog.WithLookup(lookup))
	testsupport.SeedMovies(t, store, movie.Movie{Title: "Heat", Rating: 8})

	if _, err := svc.Add(context.Background(), catalog.AddRequest{Title: "heat", Enrich: true}); !errors.Is(err, catalog.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if lookup.calls != 0 {
		t.Fatal("lookup should not run for a title already in the collection")
	}
}

func TestAddNotFoundOnline(t *testing.T) {
	lookup := &stubLookup{err: metadata.ErrNotFound}
	svc, _ := newService(t, catalog.WithLookup(lookup))
	ctx := context.Background()

	if _, err := svc.Add(ctx, catalog.AddRequest{Title: "Home Movie", Enrich: true}); !errors.Is(err, catalog.ErrMovieNotFoundOnline) {
		t.Fatalf("expected ErrMovieNotFoundOnline, got %v", err)
	}
	got, err := svc.Add(ctx, catalog.AddRequest{Title: "Home Movie", Year: 2015, Rating: 6, Enrich: true})
	if err != nil {
		t.Fatalf("manual fallback failed: %v", err)
	}
	if got.Poster != movie.PlaceholderPoster || got.Year != 2015 {
		t.Fatalf("unexpected fallback movie %+v", got)
	}
	if lookup.year != 2015 {
		t.Fatalf("expected year hint passed to lookup, got %d", lookup.year)
	}
}

func TestAddServiceErrorIsNotNotFound(t *testing.T) {
	lookup := &stubLookup{err: &metadata.ServiceError{Provider: "omdb", Err: context.DeadlineExceeded}}
	svc, store := newService(t, catalog.WithLookup(lookup))

	_, err := svc.Add(context.Background(), catalog.AddRequest{Title: "Heat", Rating: 8, Enrich: true})
	var serviceErr *metadata.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if errors.Is(err, catalog.ErrMovieNotFoundOnline) || errors.Is(err, catalog.ErrNotFound) {
		t.Fatal("service failure must not look like a miss")
	}
	if c, _ := store.List(); c.Len() != 0 {
		t.Fatal("nothing should be stored when the lookup fails")
	}
}

func TestAddWithoutOnlineRating(t *testing.T) {
	lookup := &stubLookup{rec: &metadata.Record{Title: "Obscure", Year: 1950}}
	svc, _ := newService(t, catalog.WithLookup(lookup))

	_, err := svc.Add(context.Background(), catalog.AddRequest{Title: "Obscure", Enrich: true})
	if !errors.Is(err, catalog.ErrInvalidRating) || !strings.Contains(err.Error(), "no online rating") {
		t.Fatalf("expected missing-rating error, got %v", err)
	}
}

func TestDeleteAndUpdate(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()
	testsupport.SeedMovies(t, store, movie.Movie{Title: "Up", Year: 2009, Rating: 8.2, Poster: "p"})

	if err := svc.Update(ctx, "UP", 11); !errors.Is(err, catalog.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
	if err := svc.Update(ctx, "Down", 5); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Update(ctx, "up", 9); err != nil {
		t.Fatalf("Update: %v", err)
	}
	c, _ := store.List()
	if m, _ := c.Get("Up"); m.Rating != 9 || m.Poster != "p" {
		t.Fatalf("unexpected record after update %+v", m)
	}

	if err := svc.Delete(ctx, "Down"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "UP"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestListSurfacesMalformedDataAsWarning(t *testing.T) {
	svc, store := newService(t)
	testsupport.WriteFile(t, store.Path(), "{not json")

	listing, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !errors.Is(listing.Warning, storage.ErrMalformedData) {
		t.Fatalf("expected malformed warning, got %v", listing.Warning)
	}
	if listing.Movies == nil || len(listing.Movies) != 0 {
		t.Fatalf("expected empty movies, got %+v", listing.Movies)
	}

	if _, err := svc.Stats(); !errors.Is(err, storage.ErrMalformedData) {
		t.Fatalf("queries should report malformed data, got %v", err)
	}
}

func TestRandomPicksFromCollection(t *testing.T) {
	svc, store := newService(t, catalog.WithRand(rand.New(rand.NewPCG(1, 2))))
	if _, err := svc.Random(); !errors.Is(err, catalog.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
	testsupport.SeedMovies(t, store,
		movie.Movie{Title: "A", Rating: 1},
		movie.Movie{Title: "B", Rating: 2},
		movie.Movie{Title: "C", Rating: 3},
	)
	seen := map[string]bool{}
	for range 50 {
		m, err := svc.Random()
		if err != nil {
			t.Fatalf("Random: %v", err)
		}
		seen[m.Title] = true
	}
	if len(seen) < 2 {
		t.Fatalf("expected several distinct picks, got %v", seen)
	}
}
