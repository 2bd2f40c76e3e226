// Package storage persists a movie collection to a flat file.
//
// Storage is the capability contract the rest of moviedb depends on: List,
// Add, Delete, and Update. Two backends satisfy it, JSONStore and CSVStore.
// They differ only in physical encoding; both share the same record rules and
// the same whole-file lifecycle:
//
//   - every call loads the entire file, so there is no long-lived in-memory state
//   - a missing or empty file is an empty collection, never an error
//   - a malformed file yields an empty collection together with a
//     *MalformedDataError, and mutations refuse to overwrite it
//   - saves go to a temp file in the same directory that is renamed over the
//     original, so readers never observe a partially written file
//   - when locking is enabled, an advisory lock on "<file>.lock" guards the
//     load-mutate-save sequence against other processes
//
// Add, Delete, and Update report "already exists" and "not found" as a false
// result with a nil error. Errors are reserved for invalid input, malformed
// data, and I/O failures.
package storage
