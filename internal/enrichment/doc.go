// Package enrichment picks which films to look up on TMDB and folds the
// lookups into ranked actor, director, and genre tables.
//
// SelectFilms bounds request volume: the top-rated films first, then the most
// recent diary films not already chosen, deduplicated by exact title.
//
// Enricher.Enrich walks the selection in fixed-size batches. All lookups of a
// batch run concurrently and the batch is joined before its results are
// tallied, so the frequency tables are only ever touched from the calling
// goroutine. After each batch the Observer hears (processed, total) and the
// enricher pauses before starting the next batch, which keeps at most one
// batch of requests in flight against TMDB. A failed lookup contributes
// nothing; Enrich itself never fails.
package enrichment
