// Package tmdb provides the minimal TMDB API client used for film enrichment.
//
// It authenticates requests with an API key and exposes movie search (title
// plus optional release year) and movie detail retrieval with the credits
// sub-resource appended, so one detail call returns genres, cast, and crew.
// Resolve chains the two calls the way enrichment needs them: the first
// search candidate wins.
//
// Options allow tests to supply custom HTTP clients without modifying
// production code.
package tmdb
