// Package stats turns parsed diary and ratings rows into the year-in-review
// summary.
//
// Aggregate is a pure function: it performs no I/O, keeps no package state,
// and returns identical output for identical input. Every calendar bucket
// (twelve months, seven weekdays, each decade between the oldest and newest
// release) is present in the output even when its count is zero, so
// presentation code can render charts without filling gaps.
//
// Ratings are correlated with diary rows by folded (name, year) key. This is a
// best-effort join: typos and re-release years in the export are not repaired,
// and a rating that matches no diary row still counts toward the histogram and
// the average.
package stats
