// Package config loads, normalizes, and validates moviedb configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY and TMDB_API_KEY. The Config type centralizes every knob the CLI
// needs: where the collection lives and in which format, which metadata
// provider enriches new movies, and how logs and reports are produced.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and explicit credentials. Nothing outside this package reads
// the process environment.
package config
