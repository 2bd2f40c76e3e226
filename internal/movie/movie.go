package movie

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	// PlaceholderPoster stands in for cover art when none is known.
	PlaceholderPoster = "https://via.placeholder.com/150"

	searchURL = "https://www.imdb.com/find"
)

var (
	// ErrEmptyTitle reports a record whose title is blank.
	ErrEmptyTitle = errors.New("movie title must not be empty")
	// ErrNonFiniteRating reports a NaN or infinite rating.
	ErrNonFiniteRating = errors.New("movie rating must be a finite number")
	// ErrControlCharacter reports a title carrying line breaks, tabs or other
	// control characters that the file backends cannot round-trip.
	ErrControlCharacter = errors.New("movie title must not contain control characters")
)

// Movie is a single collection record. Title is the natural key.
type Movie struct {
	Title  string  `json:"title"`
	Year   int     `json:"year"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster"`
	Link   string  `json:"link"`
}

// NormalizeTitle returns the key used for lookups and uniqueness: the title
// with surrounding whitespace removed and Unicode case folding applied.
func NormalizeTitle(title string) string {
	return cases.Fold().String(strings.TrimSpace(title))
}

// SynthesizeLink builds the generic search URL used when a record has no link.
func SynthesizeLink(title string) string {
	return searchURL + "?q=" + url.QueryEscape(strings.TrimSpace(title))
}

// Validate checks the invariants storage enforces on every record.
func (m Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.ContainsFunc(m.Title, unicode.IsControl) {
		return fmt.Errorf("%w: %q", ErrControlCharacter, m.Title)
	}
	if math.IsNaN(m.Rating) || math.IsInf(m.Rating, 0) {
		return fmt.Errorf("%w: %v", ErrNonFiniteRating, m.Rating)
	}
	return nil
}

// WithDefaults returns m with derived fields filled: a synthesized link when
// none was supplied. A supplied link is never replaced.
func (m Movie) WithDefaults() Movie {
	if strings.TrimSpace(m.Link) == "" {
		m.Link = SynthesizeLink(m.Title)
	}
	return m
}

// ParseYear reads a release year from free text. Blank and "N/A" mean
// unknown (0). Ranges such as "2010–2014" yield their first year.
func ParseYear(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, "n/a") {
		return 0, nil
	}
	end := 0
	for end < len(trimmed) && unicode.IsDigit(rune(trimmed[end])) {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("parse year %q: no leading digits", value)
	}
	if end != len(trimmed) && end != 4 {
		return 0, fmt.Errorf("parse year %q: unexpected suffix", value)
	}
	year, err := strconv.Atoi(trimmed[:end])
	if err != nil {
		return 0, fmt.Errorf("parse year %q: %w", value, err)
	}
	return year, nil
}
