package testsupport

import (
	"testing"

	"moviedb/internal/config"
	"moviedb/internal/movie"
	"moviedb/internal/storage"
)

// MustOpenStore opens the collection store described by cfg.
func MustOpenStore(t testing.TB, cfg *config.Config) storage.FileStore {
	t.Helper()

	store, err := storage.Open(cfg.Storage.Path, cfg.Storage.Format, storage.WithLock(cfg.Storage.Lock))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	return store
}

// SeedMovies adds each movie to store and fails the test on error or conflict.
func SeedMovies(t testing.TB, store storage.Storage, movies ...movie.Movie) {
	t.Helper()

	for _, m := range movies {
		added, err := store.Add(m)
		if err != nil {
			t.Fatalf("seed %q: %v", m.Title, err)
		}
		if !added {
			t.Fatalf("seed %q: already present", m.Title)
		}
	}
}
