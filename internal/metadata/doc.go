// Package metadata looks up movie details from an online provider.
//
// Lookup is the collaborator contract used when adding movies. The omdb and
// tmdb subpackages hold thin HTTP clients; OMDbLookup and TMDBLookup adapt
// them to Lookup and translate their failures: a miss becomes ErrNotFound and
// everything else, including timeouts, becomes a *ServiceError.
package metadata
