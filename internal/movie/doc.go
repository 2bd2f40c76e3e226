// Package movie defines the movie record, the ordered collection keyed by
// normalized title, and the pure rules shared by every storage backend:
// title normalization, link synthesis, and year parsing.
package movie
