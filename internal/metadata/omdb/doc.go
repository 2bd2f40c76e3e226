// Package omdb provides a small client for the OMDb title lookup API.
//
// OMDb answers a title query with a single best match. The client returns
// the decoded payload; a "Response": "False" answer for an unknown title is
// reported as ErrNotFound, and every other failure as an ordinary error.
package omdb
