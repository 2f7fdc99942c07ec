// Package filmcache persists resolved film lookups in a local SQLite database
// so repeated reports do not hit TMDB for films already seen.
//
// The cache stores opaque payloads keyed by a caller-chosen film key; callers
// decide the payload encoding. A sidecar lock file held with flock guarantees
// a single writer: a second process opening the same cache gets ErrLocked and
// should continue without caching. Entries older than the configured TTL are
// treated as misses and removed by Prune.
package filmcache
