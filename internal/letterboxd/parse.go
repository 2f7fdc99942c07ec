package letterboxd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"cinewrapped/internal/textutil"
)

const (
	colDate        = "date"
	colName        = "name"
	colYear        = "year"
	colURI         = "letterboxd uri"
	colRating      = "rating"
	colRewatch     = "rewatch"
	colTags        = "tags"
	colWatchedDate = "watched date"
)

// header maps lower-cased column names to their index.
type header map[string]int

func newHeader(record []string) header {
	h := make(header, len(record))
	for i, name := range record {
		name = strings.TrimPrefix(name, "\ufeff")
		key := strings.ToLower(textutil.CollapseSpace(name))
		if _, exists := h[key]; !exists {
			h[key] = i
		}
	}
	return h
}

func (h header) has(name string) bool {
	_, ok := h[name]
	return ok
}

func (h header) field(record []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ParseDiary reads a diary.csv export. The watch date comes from the
// "Watched Date" column, falling back to "Date" when it is blank.
func ParseDiary(r io.Reader) ([]DiaryEntry, ParseReport, error) {
	var report ParseReport
	reader := newReader(r)

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, nil
	}
	if err != nil {
		return nil, report, fmt.Errorf("%w: read header: %v", ErrInvalidDiary, err)
	}
	h := newHeader(head)
	if !h.has(colName) || (!h.has(colWatchedDate) && !h.has(colDate)) {
		return nil, report, fmt.Errorf("%w: missing Name or Date column", ErrInvalidDiary)
	}

	var entries []DiaryEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Rows++
		if err != nil {
			if report.Rows == 1 {
				return nil, report, fmt.Errorf("%w: %v", ErrInvalidDiary, err)
			}
			report.Skipped++
			continue
		}
		entry, err := parseDiaryRecord(h, record)
		if err != nil {
			if report.Rows == 1 {
				return nil, report, fmt.Errorf("%w: first row: %v", ErrInvalidDiary, err)
			}
			report.Skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, report, nil
}

func parseDiaryRecord(h header, record []string) (DiaryEntry, error) {
	rawDate := h.field(record, colWatchedDate)
	if rawDate == "" {
		rawDate = h.field(record, colDate)
	}
	if rawDate == "" {
		return DiaryEntry{}, errors.New("missing watch date")
	}
	watched, err := time.Parse(DateLayout, rawDate)
	if err != nil {
		return DiaryEntry{}, fmt.Errorf("watch date %q: %w", rawDate, err)
	}
	name := textutil.CollapseSpace(h.field(record, colName))
	if name == "" {
		return DiaryEntry{}, errors.New("missing film name")
	}
	entry := DiaryEntry{
		Name:    name,
		Year:    parseYear(h.field(record, colYear)),
		URI:     h.field(record, colURI),
		Watched: watched,
		Rewatch: strings.EqualFold(h.field(record, colRewatch), "yes"),
		Tags:    splitTags(h.field(record, colTags)),
	}
	if rating, ok := ParseRating(h.field(record, colRating)); ok {
		entry.Rating = rating
	}
	return entry, nil
}

// ParseRatings reads a ratings.csv export. An empty file yields no rows.
func ParseRatings(r io.Reader) ([]RatingEntry, ParseReport, error) {
	var report ParseReport
	reader := newReader(r)

	head, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, nil
	}
	if err != nil {
		return nil, report, fmt.Errorf("%w: read header: %v", ErrInvalidRatings, err)
	}
	h := newHeader(head)
	if !h.has(colRating) || !h.has(colName) {
		return nil, report, fmt.Errorf("%w: missing Name or Rating column", ErrInvalidRatings)
	}

	var entries []RatingEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		report.Rows++
		if err != nil {
			if report.Rows == 1 {
				return nil, report, fmt.Errorf("%w: %v", ErrInvalidRatings, err)
			}
			report.Skipped++
			continue
		}
		entry, err := parseRatingRecord(h, record)
		if err != nil {
			if report.Rows == 1 {
				return nil, report, fmt.Errorf("%w: first row: %v", ErrInvalidRatings, err)
			}
			report.Skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, report, nil
}

func parseRatingRecord(h header, record []string) (RatingEntry, error) {
	raw := h.field(record, colRating)
	if raw == "" {
		return RatingEntry{}, errors.New("missing rating")
	}
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return RatingEntry{}, fmt.Errorf("rating %q: %w", raw, err)
	}
	name := textutil.CollapseSpace(h.field(record, colName))
	if name == "" {
		return RatingEntry{}, errors.New("missing film name")
	}
	entry := RatingEntry{
		Name:   name,
		Year:   parseYear(h.field(record, colYear)),
		URI:    h.field(record, colURI),
		Rating: rating,
	}
	if date, err := time.Parse(DateLayout, h.field(record, colDate)); err == nil {
		entry.Date = date
	}
	return entry, nil
}

// ParseRating parses a rating value and reports whether it is a valid half-point
// value between 0.5 and 5.0.
func ParseRating(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, IsValidRating(value)
}

// IsValidRating reports whether value lies on the half-point scale 0.5..5.0.
func IsValidRating(value float64) bool {
	halves := value * 2
	if halves < 1 || halves > 10 {
		return false
	}
	return halves == float64(int(halves))
}

func parseYear(raw string) int {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || year < 0 {
		return 0
	}
	return year
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := textutil.CollapseSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = false
	return reader
}
