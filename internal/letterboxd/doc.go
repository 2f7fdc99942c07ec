// Package letterboxd parses the diary and ratings CSV files from a Letterboxd
// data export into typed rows.
//
// Columns are located by header name, so column order and extra columns in
// newer exports do not matter. A file whose first data row lacks the required
// field is rejected with ErrInvalidDiary or ErrInvalidRatings; later rows that
// fail to parse are skipped and counted in the returned ParseReport.
package letterboxd
