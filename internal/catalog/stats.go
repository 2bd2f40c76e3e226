package catalog

import (
	"fmt"
	"math"
	"slices"

	"moviedb/internal/movie"
)

// Stats summarizes the ratings in a collection.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	// Best and Worst hold every movie sharing the highest and lowest rating.
	Best  []movie.Movie
	Worst []movie.Movie
}

// Stats computes rating statistics. An empty collection yields ErrEmptyCollection.
func (s *Service) Stats() (Stats, error) {
	movies, err := s.movies()
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(movies)
}

// ComputeStats is Stats over an explicit slice.
func ComputeStats(movies []movie.Movie) (Stats, error) {
	if len(movies) == 0 {
		return Stats{}, ErrEmptyCollection
	}

	ratings := make([]float64, len(movies))
	var sum float64
	hi, lo := math.Inf(-1), math.Inf(1)
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
		hi = max(hi, m.Rating)
		lo = min(lo, m.Rating)
	}
	slices.Sort(ratings)

	st := Stats{
		Count: len(movies),
		Mean:  sum / float64(len(movies)),
	}
	mid := len(ratings) / 2
	if len(ratings)%2 == 1 {
		st.Median = ratings[mid]
	} else {
		st.Median = (ratings[mid-1] + ratings[mid]) / 2
	}
	for _, m := range movies {
		if m.Rating == hi {
			st.Best = append(st.Best, m)
		}
		if m.Rating == lo {
			st.Worst = append(st.Worst, m)
		}
	}
	return st, nil
}

// Bin is one histogram bucket covering [Low, High). The last bin also
// includes MaxRating.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Label renders the bucket range, e.g. "1.0-2.8".
func (b Bin) Label() string {
	return fmt.Sprintf("%.1f-%.1f", b.Low, b.High)
}

// Histogram counts ratings in equal-width bins spanning MinRating..MaxRating.
func (s *Service) Histogram(bins int) ([]Bin, error) {
	movies, err := s.movies()
	if err != nil {
		return nil, err
	}
	return ComputeHistogram(movies, bins)
}

// ComputeHistogram is Histogram over an explicit slice.
func ComputeHistogram(movies []movie.Movie, bins int) ([]Bin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram needs at least one bin, got %d", bins)
	}
	if len(movies) == 0 {
		return nil, ErrEmptyCollection
	}
	width := (MaxRating - MinRating) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = MinRating + float64(i)*width
		out[i].High = MinRating + float64(i+1)*width
	}
	for _, m := range movies {
		idx := int((m.Rating - MinRating) / width)
		idx = max(0, min(idx, bins-1))
		out[idx].Count++
	}
	return out, nil
}
