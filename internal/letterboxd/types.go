package letterboxd

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format used throughout Letterboxd exports.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidDiary indicates the diary file is missing a watch date on its first row.
	ErrInvalidDiary = errors.New("invalid diary export")
	// ErrInvalidRatings indicates the ratings file is missing a rating on its first row.
	ErrInvalidRatings = errors.New("invalid ratings export")
)

// DiaryEntry is one logged watch event.
type DiaryEntry struct {
	Name    string    `json:"name"`
	Year    int       `json:"year,omitempty"`
	URI     string    `json:"uri,omitempty"`
	Watched time.Time `json:"watched"`
	Rewatch bool      `json:"rewatch,omitempty"`
	Rating  float64   `json:"rating,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
}

// RatingEntry is one rating from the ratings log. It is correlated with diary
// rows by (name, year) only.
type RatingEntry struct {
	Name   string    `json:"name"`
	Year   int       `json:"year,omitempty"`
	URI    string    `json:"uri,omitempty"`
	Rating float64   `json:"rating"`
	Date   time.Time `json:"date,omitzero"`
}

// ParseReport summarizes a parse run.
type ParseReport struct {
	Rows    int `json:"rows"`
	Skipped int `json:"skipped"`
}
