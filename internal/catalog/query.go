package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"moviedb/internal/movie"
)

// suggestionThreshold is the minimum similarity, in percent, for a title to
// be offered as a "did you mean" suggestion.
const suggestionThreshold = 60

// SearchResult holds the titles matching a query. Suggestions is only filled
// when nothing matched.
type SearchResult struct {
	Matches     []movie.Movie
	Suggestions []string
}

// Search returns movies whose title contains query, ignoring case. When none
// match it proposes up to the configured number of similar titles.
func (s *Service) Search(query string) (SearchResult, error) {
	needle := movie.NormalizeTitle(query)
	if needle == "" {
		return SearchResult{}, ErrEmptyTitle
	}
	movies, err := s.movies()
	if err != nil {
		return SearchResult{}, err
	}

	var result SearchResult
	for _, m := range movies {
		if strings.Contains(movie.NormalizeTitle(m.Title), needle) {
			result.Matches = append(result.Matches, m)
		}
	}
	if len(result.Matches) == 0 {
		result.Suggestions = suggest(needle, movies, s.suggestionLimit)
	}
	return result, nil
}

type suggestion struct {
	title string
	score int
}

// suggest ranks titles by similarity to needle. A title qualifies when needle
// is a fuzzy subsequence of it or when their edit-distance similarity reaches
// suggestionThreshold.
func suggest(needle string, movies []movie.Movie, limit int) []string {
	titles := make([]string, len(movies))
	folded := make([]string, len(movies))
	for i, m := range movies {
		titles[i] = m.Title
		folded[i] = movie.NormalizeTitle(m.Title)
	}

	scores := make(map[int]int)
	for _, rank := range fuzzy.RankFindNormalizedFold(needle, folded) {
		scores[rank.OriginalIndex] = similarity(needle, folded[rank.OriginalIndex])
	}
	for i, title := range folded {
		if _, ok := scores[i]; ok {
			continue
		}
		if score := similarity(needle, title); score >= suggestionThreshold {
			scores[i] = score
		}
	}

	ranked := make([]suggestion, 0, len(scores))
	for i, score := range scores {
		ranked = append(ranked, suggestion{title: titles[i], score: score})
	}
	slices.SortFunc(ranked, func(a, b suggestion) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.title, b.title)
	})

	out := make([]string, 0, min(limit, len(ranked)))
	for _, r := range ranked {
		if len(out) == limit {
			break
		}
		out = append(out, r.title)
	}
	return out
}

// similarity maps Levenshtein distance onto 0..100, where 100 is identical.
func similarity(a, b string) int {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return (longest - dist) * 100 / longest
}

// SortedByRating returns all movies, best rated first. Ties are ordered by title.
func (s *Service) SortedByRating() ([]movie.Movie, error) {
	movies, err := s.movies()
	if err != nil {
		return nil, err
	}
	SortByRating(movies)
	return movies, nil
}

// SortedByYear returns all movies in release order, newest first when desc is
// set. Movies without a known year always come last.
func (s *Service) SortedByYear(desc bool) ([]movie.Movie, error) {
	movies, err := s.movies()
	if err != nil {
		return nil, err
	}
	SortByYear(movies, desc)
	return movies, nil
}

// SortedByTitle returns all movies in case-insensitive title order.
func (s *Service) SortedByTitle() ([]movie.Movie, error) {
	movies, err := s.movies()
	if err != nil {
		return nil, err
	}
	SortByTitle(movies)
	return movies, nil
}

// SortByRating orders movies in place like SortedByRating.
func SortByRating(movies []movie.Movie) {
	slices.SortStableFunc(movies, func(a, b movie.Movie) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(movie.NormalizeTitle(a.Title), movie.NormalizeTitle(b.Title))
	})
}

// SortByYear orders movies in place like SortedByYear.
func SortByYear(movies []movie.Movie, desc bool) {
	slices.SortStableFunc(movies, func(a, b movie.Movie) int {
		switch {
		case a.Year == 0 && b.Year == 0:
			return 0
		case a.Year == 0:
			return 1
		case b.Year == 0:
			return -1
		}
		if desc {
			return cmp.Compare(b.Year, a.Year)
		}
		return cmp.Compare(a.Year, b.Year)
	})
}

// SortByTitle orders movies in place like SortedByTitle.
func SortByTitle(movies []movie.Movie) {
	slices.SortStableFunc(movies, func(a, b movie.Movie) int {
		return cmp.Compare(movie.NormalizeTitle(a.Title), movie.NormalizeTitle(b.Title))
	})
}

// Filter narrows the collection. Zero fields are unbounded. A movie with an
// unknown year never satisfies a year bound.
type Filter struct {
	MinRating float64
	StartYear int
	EndYear   int
}

// Filter returns the movies satisfying every bound in f, in collection order.
func (s *Service) Filter(f Filter) ([]movie.Movie, error) {
	if f.MinRating != 0 {
		if err := ValidateRating(f.MinRating); err != nil {
			return nil, err
		}
	}
	if f.StartYear != 0 && f.EndYear != 0 && f.StartYear > f.EndYear {
		return nil, ErrInvalidYear
	}
	movies, err := s.movies()
	if err != nil {
		return nil, err
	}
	out := make([]movie.Movie, 0, len(movies))
	for _, m := range movies {
		if f.matches(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f Filter) matches(m movie.Movie) bool {
	if f.MinRating != 0 && m.Rating < f.MinRating {
		return false
	}
	if (f.StartYear != 0 || f.EndYear != 0) && m.Year == 0 {
		return false
	}
	if f.StartYear != 0 && m.Year < f.StartYear {
		return false
	}
	if f.EndYear != 0 && m.Year > f.EndYear {
		return false
	}
	return true
}

// Random returns one movie chosen uniformly.
func (s *Service) Random() (movie.Movie, error) {
	movies, err := s.movies()
	if err != nil {
		return movie.Movie{}, err
	}
	if len(movies) == 0 {
		return movie.Movie{}, ErrEmptyCollection
	}
	return movies[s.rng.IntN(len(movies))], nil
}
