package main

import (
	"encoding/json"
	"io"

	"moviedb/internal/catalog"
	"moviedb/internal/movie"
)

// writeJSON encodes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

type movieJSON struct {
	Title  string  `json:"title"`
	Year   int     `json:"year,omitempty"`
	Rating float64 `json:"rating"`
	Poster string  `json:"poster,omitempty"`
	Link   string  `json:"link,omitempty"`
}

func toMovieJSON(m movie.Movie) movieJSON {
	return movieJSON{Title: m.Title, Year: m.Year, Rating: m.Rating, Poster: m.Poster, Link: m.Link}
}

func toMoviesJSON(movies []movie.Movie) []movieJSON {
	out := make([]movieJSON, len(movies))
	for i, m := range movies {
		out[i] = toMovieJSON(m)
	}
	return out
}

type listJSON struct {
	Count   int         `json:"count"`
	Movies  []movieJSON `json:"movies"`
	Warning string      `json:"warning,omitempty"`
}

type searchJSON struct {
	Query       string      `json:"query"`
	Matches     []movieJSON `json:"matches"`
	Suggestions []string    `json:"suggestions"`
}

type statsJSON struct {
	Count  int         `json:"count"`
	Mean   float64     `json:"mean"`
	Median float64     `json:"median"`
	Best   []movieJSON `json:"best"`
	Worst  []movieJSON `json:"worst"`
}

func toStatsJSON(st catalog.Stats) statsJSON {
	return statsJSON{
		Count:  st.Count,
		Mean:   st.Mean,
		Median: st.Median,
		Best:   toMoviesJSON(st.Best),
		Worst:  toMoviesJSON(st.Worst),
	}
}

type binJSON struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}
