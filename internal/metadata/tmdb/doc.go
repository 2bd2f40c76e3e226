// Package tmdb provides the minimal TMDB API client used to enrich movies.
//
// It authenticates requests and exposes movie search with an optional
// release-year filter plus movie detail retrieval. Options allow tests to
// supply custom HTTP clients without modifying production code.
package tmdb
