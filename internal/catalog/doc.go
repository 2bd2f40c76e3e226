// Package catalog implements the movie collection commands on top of the
// storage contract.
//
// Service owns input validation (rating range, plausible release year),
// optional online enrichment through a metadata.Lookup, and the read-only
// views the CLI offers: search with "did you mean" suggestions, sorting,
// filtering, statistics, a random pick, and a rating histogram. Storage's
// boolean not-found and conflict results become ErrNotFound and ErrDuplicate
// here so callers can use errors.Is.
package catalog
