package catalog_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"moviedb/internal/catalog"
	"moviedb/internal/movie"
	"moviedb/internal/testsupport"
)

func titlesOf(movies []movie.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func seededService(t *testing.T, movies ...movie.Movie) *catalog.Service {
	t.Helper()
	svc, store := newService(t)
	testsupport.SeedMovies(t, store, movies...)
	return svc
}

func TestSearchMatchesSubstringIgnoringCase(t *testing.T) {
	svc := seededService(t,
		movie.Movie{Title: "The Dark Knight", Rating: 9},
		movie.Movie{Title: "Dark City", Rating: 7.6},
		movie.Movie{Title: "Heat", Rating: 8.3},
	)
	res, err := svc.Search("DARK")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := titlesOf(res.Matches); !slices.Equal(got, []string{"The Dark Knight", "Dark City"}) {
		t.Fatalf("unexpected matches %v", got)
	}
	if len(res.Suggestions) != 0 {
		t.Fatalf("suggestions should be empty when something matched: %v", res.Suggestions)
	}

	if _, err := svc.Search("   "); !errors.Is(err, catalog.ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestSearchSuggestsSimilarTitles(t *testing.T) {
	svc := seededService(t,
		movie.Movie{Title: "Inception", Rating: 8.8},
		movie.Movie{Title: "Interstellar", Rating: 8.6},
		movie.Movie{Title: "Memento", Rating: 8.4},
	)
	res, err := svc.Search("Incepton")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Matches) != 0 {
		t.Fatalf("expected no matches, got %v", titlesOf(res.Matches))
	}
	if !slices.Equal(res.Suggestions, []string{"Inception"}) {
		t.Fatalf("unexpected suggestions %v", res.Suggestions)
	}

	res, _ = svc.Search("zzzz")
	if len(res.Suggestions) != 0 {
		t.Fatalf("expected no suggestions for unrelated query, got %v", res.Suggestions)
	}
}

func TestSearchSuggestionsRespectLimit(t *testing.T) {
	svc, store := newService(t, catalog.WithSuggestionLimit(3))
	testsupport.SeedMovies(t, store,
		movie.Movie{Title: "Heat 4", Rating: 1},
		movie.Movie{Title: "Heat 2", Rating: 1},
		movie.Movie{Title: "Heat 3", Rating: 1},
		movie.Movie{Title: "Heat 1", Rating: 1},
	)
	res, err := svc.Search("heatt")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if !slices.Equal(res.Suggestions, []string{"Heat 1", "Heat 2", "Heat 3"}) {
		t.Fatalf("unexpected suggestions %v", res.Suggestions)
	}
}

var sampleMovies = []movie.Movie{
	{Title: "Alpha", Year: 2000, Rating: 9},
	{Title: "Bravo", Year: 2010, Rating: 7},
	{Title: "charlie", Rating: 8},
	{Title: "Delta", Year: 1995, Rating: 5},
	{Title: "Echo", Year: 2000, Rating: 9},
}

func TestSorting(t *testing.T) {
	svc := seededService(t, sampleMovies...)

	byRating, err := svc.SortedByRating()
	if err != nil {
		t.Fatalf("SortedByRating: %v", err)
	}
	if got := titlesOf(byRating); !slices.Equal(got, []string{"Alpha", "Echo", "charlie", "Bravo", "Delta"}) {
		t.Fatalf("unexpected rating order %v", got)
	}

	byYear, _ := svc.SortedByYear(false)
	if got := titlesOf(byYear); !slices.Equal(got, []string{"Delta", "Alpha", "Echo", "Bravo", "charlie"}) {
		t.Fatalf("unexpected ascending year order %v", got)
	}
	byYear, _ = svc.SortedByYear(true)
	if got := titlesOf(byYear); !slices.Equal(got, []string{"Bravo", "Alpha", "Echo", "Delta", "charlie"}) {
		t.Fatalf("unexpected descending year order %v", got)
	}

	byTitle, _ := svc.SortedByTitle()
	if got := titlesOf(byTitle); !slices.Equal(got, []string{"Alpha", "Bravo", "charlie", "Delta", "Echo"}) {
		t.Fatalf("unexpected title order %v", got)
	}
}

func TestFilter(t *testing.T) {
	svc := seededService(t, sampleMovies...)
	tests := []struct {
		name   string
		filter catalog.Filter
		want   []string
	}{
		{"none", catalog.Filter{}, []string{"Alpha", "Bravo", "charlie", "Delta", "Echo"}},
		{"min rating", catalog.Filter{MinRating: 8}, []string{"Alpha", "charlie", "Echo"}},
		{"start year", catalog.Filter{StartYear: 2000}, []string{"Alpha", "Bravo", "Echo"}},
		{"end year", catalog.Filter{EndYear: 2000}, []string{"Alpha", "Delta", "Echo"}},
		{"all bounds", catalog.Filter{MinRating: 6, StartYear: 2001, EndYear: 2020}, []string{"Bravo"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Filter(tc.filter)
			if err != nil {
				t.Fatalf("Filter: %v", err)
			}
			if !slices.Equal(titlesOf(got), tc.want) {
				t.Fatalf("got %v, want %v", titlesOf(got), tc.want)
			}
		})
	}

	if _, err := svc.Filter(catalog.Filter{StartYear: 2010, EndYear: 2000}); !errors.Is(err, catalog.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
	if _, err := svc.Filter(catalog.Filter{MinRating: 11}); !errors.Is(err, catalog.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc := seededService(t, sampleMovies...)
	st, err := svc.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.Count != 5 || math.Abs(st.Mean-7.6) > 1e-9 || st.Median != 8 {
		t.Fatalf("unexpected stats %+v", st)
	}
	if got := titlesOf(st.Best); !slices.Equal(got, []string{"Alpha", "Echo"}) {
		t.Fatalf("unexpected best %v", got)
	}
	if got := titlesOf(st.Worst); !slices.Equal(got, []string{"Delta"}) {
		t.Fatalf("unexpected worst %v", got)
	}

	even, err := catalog.ComputeStats(sampleMovies[:4])
	if err != nil {
		t.Fatalf("ComputeStats: %v", err)
	}
	if even.Median != 7.5 {
		t.Fatalf("expected median 7.5 for even count, got %v", even.Median)
	}

	if _, err := catalog.ComputeStats(nil); !errors.Is(err, catalog.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}

func TestHistogram(t *testing.T) {
	movies := []movie.Movie{
		{Title: "a", Rating: 1},
		{Title: "b", Rating: 2.7},
		{Title: "c", Rating: 5},
		{Title: "d", Rating: 9.9},
		{Title: "e", Rating: 10},
	}
	bins, err := catalog.ComputeHistogram(movies, 5)
	if err != nil {
		t.Fatalf("ComputeHistogram: %v", err)
	}
	counts := make([]int, len(bins))
	for i, b := range bins {
		counts[i] = b.Count
	}
	if !slices.Equal(counts, []int{2, 0, 1, 0, 2}) {
		t.Fatalf("unexpected counts %v", counts)
	}
	if bins[0].Label() != "1.0-2.8" || bins[4].Label() != "8.2-10.0" {
		t.Fatalf("unexpected labels %q %q", bins[0].Label(), bins[4].Label())
	}

	if _, err := catalog.ComputeHistogram(movies, 0); err == nil {
		t.Fatal("expected error for zero bins")
	}
	if _, err := catalog.ComputeHistogram(nil, 5); !errors.Is(err, catalog.ErrEmptyCollection) {
		t.Fatalf("expected ErrEmptyCollection, got %v", err)
	}
}
