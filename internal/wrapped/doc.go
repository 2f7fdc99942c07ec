// Package wrapped turns parsed Letterboxd exports into a finished year in
// review.
//
// Pipeline.Run aggregates the diary, picks films for enrichment, looks them
// up in batches, merges the ranked cast, crew and genre tables into the
// statistics, and names a persona. Only aggregation can fail the run: an
// empty diary is reported before any network traffic starts, while
// enrichment and persona problems just leave those sections thinner.
package wrapped
